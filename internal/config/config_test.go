package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qrng.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
address: random.cs.upt.ro
timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "random.cs.upt.ro", cfg.Address)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 64<<20, cfg.MaxResponseSize)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
address: 10.17.2.72
insecure: false
ca_file: /etc/qrng/ca.pem
log:
  level: debug
  format: json
metrics:
  addr: ":9100"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Insecure)
	assert.Equal(t, "/etc/qrng/ca.pem", cfg.CAFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, "timeout: 1s\n"))
	assert.ErrorContains(t, err, "address is required")

	_, err = Load(writeConfig(t, "address: a\nlog:\n  format: xml\n"))
	assert.ErrorContains(t, err, "unsupported log format")

	_, err = Load(writeConfig(t, "address: [\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromViper(t *testing.T) {
	path := writeConfig(t, "address: from-file\ntimeout: 2s\n")

	v := NewViper()
	v.Set("config", path)
	v.Set("address", "from-flag")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Address)
	assert.Equal(t, 2*time.Second, cfg.Timeout)

	t.Setenv("QRNG_LOG_LEVEL", "debug")
	t.Setenv("QRNG_ADDRESS", "from-env")
	cfg, err = FromViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
}
