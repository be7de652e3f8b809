package qrng

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ProgressFunc is called while a pass-through response is copied to its
// sink. total is the expected byte count, or -1 when unknown.
type ProgressFunc func(kind RequestKind, received, total int64)

// Option configures a Client at Open.
type Option func(*options)

type options struct {
	httpClient      *http.Client
	timeout         time.Duration
	insecure        bool
	caFile          string
	maxResponseSize int
	logger          zerolog.Logger
	metrics         *Metrics
	progress        ProgressFunc
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}

// WithHTTPClient uses hc for every request instead of building a transport.
// TLS-related options are ignored when it is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout bounds each request. The default is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithInsecureSkipVerify disables certificate and hostname verification.
// Quantis appliances ship with self-signed certificates; enable this only
// for such deployments.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(o *options) { o.insecure = insecure }
}

// WithRootCAs trusts the PEM certificates in path in addition to the
// system pool.
func WithRootCAs(path string) Option {
	return func(o *options) { o.caFile = path }
}

// WithMaxResponseSize caps the size of buffered value responses.
func WithMaxResponseSize(n int) Option {
	return func(o *options) { o.maxResponseSize = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}
