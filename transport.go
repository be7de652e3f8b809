package qrng

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// newHTTPClient builds the session transport from o.
func newHTTPClient(o options) (*http.Client, error) {
	if o.httpClient != nil {
		return o.httpClient, nil
	}

	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("%w: default transport is %T", ErrTransportInit, http.DefaultTransport)
	}
	tr := base.Clone()
	tr.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: o.insecure, //nolint:gosec // appliances use self-signed certificates
	}

	if o.caFile != "" {
		pem, err := os.ReadFile(o.caFile)
		if err != nil {
			return nil, fmt.Errorf("%w: read ca file: %v", ErrTransportInit, err)
		}
		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: no certificates found in %s", ErrTransportInit, o.caFile)
		}
		tr.TLSClientConfig.RootCAs = pool
	}

	return &http.Client{Transport: tr, Timeout: o.timeout}, nil
}

// progressWriter reports bytes forwarded to w.
type progressWriter struct {
	w     io.Writer
	kind  RequestKind
	n     int64
	total int64
	fn    ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.n += int64(n)
	if p.fn != nil {
		p.fn(p.kind, p.n, p.total)
	}
	return n, err
}

// execute performs a single GET of rawURL and copies the body into sink.
// It returns the number of body bytes written to sink.
func (c *Client) execute(ctx context.Context, kind RequestKind, rawURL string, sink io.Writer, total int64) (int64, error) {
	start := time.Now()
	pw := &progressWriter{w: sink, kind: kind, total: total}
	if !kind.buffered() {
		pw.fn = c.opts.progress
	}

	err := c.do(ctx, rawURL, pw)
	c.opts.metrics.observe(kind, pw.n, time.Since(start), err)
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("request failed")
		return pw.n, err
	}
	c.log.Debug().Str("kind", kind.String()).Int64("bytes", pw.n).Dur("elapsed", time.Since(start)).Msg("request complete")
	return pw.n, nil
}

func (c *Client) do(ctx context.Context, rawURL string, sink io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &TransportError{URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	c.log.Debug().Str("url", rawURL).Msg("GET")
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &TransportError{URL: rawURL, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	if _, err := io.Copy(sink, resp.Body); err != nil {
		return &TransportError{URL: rawURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return nil
}
