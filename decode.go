package qrng

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// splitArray validates the "[v1,v2,...]" shape of a value response and
// returns its comma-separated tokens. "[]" yields no tokens.
func splitArray(body []byte) ([]string, error) {
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '[' || body[len(body)-1] != ']' {
		return nil, fmt.Errorf("%w: expected bracketed list, got %q", ErrMalformedResponse, truncate(body, 32))
	}
	inner := strings.TrimSpace(string(body[1 : len(body)-1]))
	if inner == "" {
		return nil, nil
	}
	tokens := strings.Split(inner, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens, nil
}

// decodeArray parses up to samples tokens of body with parse. When the
// response carries fewer tokens than samples the values decoded so far are
// returned together with a *TokenCountMismatchError. Extra tokens are ignored.
func decodeArray[T any](body []byte, samples int, parse func(string) (T, error)) ([]T, error) {
	tokens, err := splitArray(body)
	if err != nil {
		return nil, err
	}

	n := min(samples, len(tokens))
	out := make([]T, n)
	for i := 0; i < n; i++ {
		v, err := parse(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("%w: value %d (%q): %v", ErrMalformedResponse, i, tokens[i], err)
		}
		out[i] = v
	}

	if n < samples {
		return out, &TokenCountMismatchError{Want: samples, Got: n}
	}
	return out, nil
}

func parseInt16(s string) (int16, error) {
	v, err := strconv.ParseInt(s, 10, 16)
	return int16(v), err
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func parseFloat64(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parseHexByte parses a quoted hex token such as "1a".
func parseHexByte(s string) (byte, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return 0, fmt.Errorf("expected quoted hex byte")
	}
	v, err := strconv.ParseUint(s[1:len(s)-1], 16, 8)
	return byte(v), err
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
