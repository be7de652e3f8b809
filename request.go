package qrng

import (
	"fmt"
)

const (
	// MaxURLLength is the longest request URL the client will issue.
	MaxURLLength = 512
	// MaxAddressLength bounds the appliance domain (RFC 1035 name limit).
	MaxAddressLength = 253

	defaultSamples  = 1
	defaultMinInt   = 0
	defaultMaxInt   = 1
	defaultMinFloat = 0.0
	defaultMaxFloat = 1.0
)

// RequestKind selects an appliance endpoint.
type RequestKind int

const (
	KindBytes RequestKind = iota
	KindInt16
	KindInt32
	KindInt64
	KindFloat64
	KindFloat32
	KindStream
	KindFirmwareInfo
	KindSystemInfo

	numRequestKinds
)

func (k RequestKind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindFloat32:
		return "float32"
	case KindStream:
		return "stream"
	case KindFirmwareInfo:
		return "firmwareinfo"
	case KindSystemInfo:
		return "systeminfo"
	default:
		return "unknown"
	}
}

// buffered reports whether responses of this kind are decoded from an
// in-memory buffer rather than passed through to a caller sink.
func (k RequestKind) buffered() bool {
	switch k {
	case KindBytes, KindInt16, KindInt32, KindInt64, KindFloat64, KindFloat32:
		return true
	default:
		return false
	}
}

// Descriptor is the per-kind request configuration of a Client.
// Only the range fields relevant to Kind are used when rendering a URL.
type Descriptor struct {
	Kind     RequestKind
	Template string
	Address  string
	Samples  int
	MinInt   int64
	MaxInt   int64
	MinFloat float64
	MaxFloat float64
}

var templates = [numRequestKinds]string{
	KindBytes:        "https://%s/api/2.0/hexbytes?quantity=%d&dataLength=1",
	KindInt16:        "https://%s/api/2.0/short?min=%d&max=%d&quantity=%d",
	KindInt32:        "https://%s/api/2.0/int?min=%d&max=%d&quantity=%d",
	KindInt64:        "https://%s/api/2.0/int?min=%d&max=%d&quantity=%d",
	KindFloat64:      "https://%s/api/2.0/double?min=%f&max=%f&quantity=%d",
	KindFloat32:      "https://%s/api/2.0/double?min=%f&max=%f&quantity=%d",
	KindStream:       "https://%s/api/2.0/streambytes?size=%d",
	KindFirmwareInfo: "https://%s/api/2.0/firmwareinfo",
	KindSystemInfo:   "https://%s/api/2.0/systeminfo",
}

type descriptorTable [numRequestKinds]Descriptor

func defaultDescriptors() descriptorTable {
	var t descriptorTable
	for k := RequestKind(0); k < numRequestKinds; k++ {
		t[k] = Descriptor{
			Kind:     k,
			Template: templates[k],
			Samples:  defaultSamples,
			MinInt:   defaultMinInt,
			MaxInt:   defaultMaxInt,
			MinFloat: defaultMinFloat,
			MaxFloat: defaultMaxFloat,
		}
	}
	return t
}

func (t *descriptorTable) setAddress(address string) {
	for i := range t {
		t[i].Address = address
	}
}

// BuildURL renders the request URL for d. It performs no I/O.
func BuildURL(d Descriptor) (string, error) {
	if d.Address == "" {
		return "", ErrInvalidAddress
	}

	var u string
	switch d.Kind {
	case KindBytes, KindStream:
		u = fmt.Sprintf(d.Template, d.Address, d.Samples)
	case KindInt16, KindInt32, KindInt64:
		u = fmt.Sprintf(d.Template, d.Address, d.MinInt, d.MaxInt, d.Samples)
	case KindFloat64, KindFloat32:
		u = fmt.Sprintf(d.Template, d.Address, d.MinFloat, d.MaxFloat, d.Samples)
	case KindFirmwareInfo, KindSystemInfo:
		u = fmt.Sprintf(d.Template, d.Address)
	default:
		return "", fmt.Errorf("unknown request kind %d", int(d.Kind))
	}

	if len(u) > MaxURLLength {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrURLTooLong, len(u), MaxURLLength)
	}
	return u, nil
}
