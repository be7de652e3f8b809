package qrng

// responseBuffer accumulates one value response. It implements io.Writer so
// the transport can stream the body into it chunk by chunk.
type responseBuffer struct {
	data  []byte
	limit int // 0 means unbounded
}

func newResponseBuffer(limit int) *responseBuffer {
	return &responseBuffer{limit: limit}
}

func (b *responseBuffer) Write(p []byte) (int, error) {
	if b.limit > 0 && len(b.data)+len(p) > b.limit {
		return 0, ErrResponseTooLarge
	}
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *responseBuffer) Bytes() []byte { return b.data }

func (b *responseBuffer) Len() int { return len(b.data) }

// release drops the accumulated bytes. The buffer must not be used after.
func (b *responseBuffer) release() {
	b.data = nil
}
