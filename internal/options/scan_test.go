package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoscan/internal/model"
)

func validOptions() *PortScanOptions {
	o := NewPortScanOptions()
	o.Target = "192.168.1.1"
	return o
}

func TestNewPortScanOptionsDefaults(t *testing.T) {
	o := NewPortScanOptions()
	assert.Equal(t, 1, o.StartPort)
	assert.Equal(t, 1024, o.EndPort)
	assert.Equal(t, 500, o.Concurrency)
	assert.Equal(t, 2500, o.TimeoutMs)
	assert.Equal(t, "syn", o.Mode)
}

func TestValidateDefaultsPass(t *testing.T) {
	assert.NoError(t, validOptions().Validate())
}

func TestValidateRejectsEmptyTarget(t *testing.T) {
	o := validOptions()
	o.Target = ""
	assert.Error(t, o.Validate())
}

func TestValidateRejectsNonIPv4Target(t *testing.T) {
	o := validOptions()
	o.Target = "2001:db8::1"
	assert.Error(t, o.Validate())
}

func TestValidatePortRangeBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*PortScanOptions)
		wantErr bool
	}{
		{"start at floor", func(o *PortScanOptions) { o.StartPort = 1 }, false},
		{"start below floor", func(o *PortScanOptions) { o.StartPort = 0 }, true},
		{"end at ceiling", func(o *PortScanOptions) { o.EndPort = 65535 }, false},
		{"end above ceiling", func(o *PortScanOptions) { o.EndPort = 65536 }, true},
		{"end before start", func(o *PortScanOptions) { o.StartPort = 100; o.EndPort = 99 }, true},
		{"start equals end", func(o *PortScanOptions) { o.StartPort = 80; o.EndPort = 80 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := validOptions()
			tc.mutate(o)
			if tc.wantErr {
				assert.Error(t, o.Validate())
			} else {
				assert.NoError(t, o.Validate())
			}
		})
	}
}

func TestValidateConcurrencyBoundaries(t *testing.T) {
	o := validOptions()
	o.Concurrency = 0
	assert.Error(t, o.Validate())

	o.Concurrency = 10000
	assert.NoError(t, o.Validate())

	o.Concurrency = 10001
	assert.Error(t, o.Validate())
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	o := validOptions()
	o.Mode = "bogus"
	assert.Error(t, o.Validate())
}

func TestToEngineConfigTranslatesFields(t *testing.T) {
	o := validOptions()
	o.Mode = "xmas"
	o.StartPort, o.EndPort = 20, 25
	o.TimeoutMs = 1500

	cfg, err := o.ToEngineConfig()
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", cfg.TargetIP.String())
	assert.Equal(t, uint16(20), cfg.StartPort)
	assert.Equal(t, uint16(25), cfg.EndPort)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, model.Xmas, cfg.Mode)
}
