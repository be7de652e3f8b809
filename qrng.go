// Package qrng is a client for the IDQ Quantis quantum random number
// appliance REST API (api/2.0).
//
// A Client is one session against one appliance. Open it with the
// appliance domain, request values with the GetRandom* methods, and Close
// it when done. Operations on a Client are serialized; use one Client per
// logical caller when requests must run in parallel.
package qrng

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Client is a session with a Quantis appliance.
// The zero value is not usable, use Open to create one.
type Client struct {
	mu     sync.Mutex
	opts   options
	http   *http.Client
	log    zerolog.Logger
	desc   descriptorTable
	closed bool
}

// Open validates address, sets up the HTTP transport and stamps address
// into every request descriptor. address is a host name or host:port
// without scheme.
func Open(address string, opts ...Option) (*Client, error) {
	address = strings.TrimSpace(address)
	if err := validateAddress(address); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	hc, err := newHTTPClient(o)
	if err != nil {
		return nil, err
	}

	c := &Client{
		opts: o,
		http: hc,
		log:  o.logger.With().Str("component", "qrng").Str("address", address).Logger(),
		desc: defaultDescriptors(),
	}
	c.desc.setAddress(address)
	c.log.Debug().Bool("insecure", o.insecure).Msg("session opened")
	return c, nil
}

func validateAddress(address string) error {
	switch {
	case address == "":
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	case len(address) > MaxAddressLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAddress, MaxAddressLength)
	case strings.ContainsAny(address, "/?#@ \t"):
		return fmt.Errorf("%w: %q must be a host name or host:port", ErrInvalidAddress, address)
	}
	return nil
}

// Close releases idle connections held by the session. It is safe to call
// more than once and on a nil Client.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.opts.httpClient == nil {
		c.http.CloseIdleConnections()
	}
	c.log.Debug().Msg("session closed")
}

// Address returns the appliance address the session was opened with.
func (c *Client) Address() string {
	return c.desc[KindBytes].Address
}

// Descriptor returns a copy of the current descriptor for kind, or the
// zero Descriptor when kind is unknown.
func (c *Client) Descriptor(kind RequestKind) Descriptor {
	if kind < 0 || kind >= numRequestKinds {
		return Descriptor{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desc[kind]
}

// GetRandomBytes fetches samples random bytes from the hexbytes endpoint.
func (c *Client) GetRandomBytes(ctx context.Context, samples int) ([]byte, error) {
	return fetchValues(ctx, c, KindBytes, samples, nil, parseHexByte)
}

// GetRandomInt16 fetches samples integers in [min, max] from the short endpoint.
func (c *Client) GetRandomInt16(ctx context.Context, min, max int16, samples int) ([]int16, error) {
	if min > max {
		return nil, ErrInvalidRange
	}
	return fetchValues(ctx, c, KindInt16, samples, intRange(int64(min), int64(max)), parseInt16)
}

// GetRandomInt32 fetches samples integers in [min, max] from the int endpoint.
func (c *Client) GetRandomInt32(ctx context.Context, min, max int32, samples int) ([]int32, error) {
	if min > max {
		return nil, ErrInvalidRange
	}
	return fetchValues(ctx, c, KindInt32, samples, intRange(int64(min), int64(max)), parseInt32)
}

// GetRandomInt64 fetches samples integers in [min, max] from the int endpoint.
func (c *Client) GetRandomInt64(ctx context.Context, min, max int64, samples int) ([]int64, error) {
	if min > max {
		return nil, ErrInvalidRange
	}
	return fetchValues(ctx, c, KindInt64, samples, intRange(min, max), parseInt64)
}

// GetRandomFloat64 fetches samples values in [min, max) from the double endpoint.
func (c *Client) GetRandomFloat64(ctx context.Context, min, max float64, samples int) ([]float64, error) {
	if !validFloatRange(min, max) {
		return nil, ErrInvalidRange
	}
	return fetchValues(ctx, c, KindFloat64, samples, floatRange(min, max), parseFloat64)
}

// GetRandomFloat32 fetches samples values in [min, max) from the double
// endpoint, narrowed to float32.
func (c *Client) GetRandomFloat32(ctx context.Context, min, max float32, samples int) ([]float32, error) {
	if !validFloatRange(float64(min), float64(max)) {
		return nil, ErrInvalidRange
	}
	return fetchValues(ctx, c, KindFloat32, samples, floatRange(float64(min), float64(max)), parseFloat32)
}

// StreamRandomBytes copies size raw random bytes from the streambytes
// endpoint into w without buffering them.
func (c *Client) StreamRandomBytes(ctx context.Context, w io.Writer, size int) error {
	if size < 1 {
		return ErrInvalidSampleCount
	}
	return c.passThrough(ctx, KindStream, w, func(d *Descriptor) { d.Samples = size }, int64(size))
}

// FirmwareInfo copies the appliance firmware description into w.
func (c *Client) FirmwareInfo(ctx context.Context, w io.Writer) error {
	return c.passThrough(ctx, KindFirmwareInfo, w, nil, -1)
}

// SystemInfo copies the appliance system description into w.
func (c *Client) SystemInfo(ctx context.Context, w io.Writer) error {
	return c.passThrough(ctx, KindSystemInfo, w, nil, -1)
}

// validFloatRange rejects NaN bounds and min > max. Infinite bounds are
// left to the appliance.
func validFloatRange(min, max float64) bool {
	return !math.IsNaN(min) && !math.IsNaN(max) && min <= max
}

func intRange(min, max int64) func(*Descriptor) {
	return func(d *Descriptor) {
		d.MinInt = min
		d.MaxInt = max
	}
}

func floatRange(min, max float64) func(*Descriptor) {
	return func(d *Descriptor) {
		d.MinFloat = min
		d.MaxFloat = max
	}
}

// prepare updates the descriptor for kind and renders its URL.
// c.mu must be held.
func (c *Client) prepare(kind RequestKind, update func(*Descriptor)) (string, error) {
	if c.closed {
		return "", ErrClosed
	}
	d := &c.desc[kind]
	if update != nil {
		update(d)
	}
	return BuildURL(*d)
}

// fetchValues runs one accumulating-mode request and decodes the buffered
// response. Nothing is decoded when the transport fails.
func fetchValues[T any](ctx context.Context, c *Client, kind RequestKind, samples int, update func(*Descriptor), parse func(string) (T, error)) ([]T, error) {
	if samples < 1 {
		return nil, ErrInvalidSampleCount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.prepare(kind, func(d *Descriptor) {
		d.Samples = samples
		if update != nil {
			update(d)
		}
	})
	if err != nil {
		return nil, err
	}

	buf := newResponseBuffer(c.opts.maxResponseSize)
	defer buf.release()

	if _, err := c.execute(ctx, kind, u, buf, -1); err != nil {
		return nil, err
	}

	values, err := decodeArray(buf.Bytes(), samples, parse)
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Int("samples", samples).Msg("decode failed")
		return values, err
	}
	return values, nil
}

func (c *Client) passThrough(ctx context.Context, kind RequestKind, w io.Writer, update func(*Descriptor), total int64) error {
	if w == nil {
		return fmt.Errorf("%s: nil writer", kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.prepare(kind, update)
	if err != nil {
		return err
	}
	_, err = c.execute(ctx, kind, u, w, total)
	return err
}
