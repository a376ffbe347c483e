// Package options holds the CLI-to-engine translation: flag-bound
// structs validated and turned into an engine.Config, mirroring the
// teacher's internal/core/options package shape.
package options

import (
	"fmt"
	"net"
	"time"

	"neoscan/internal/engine"
	"neoscan/internal/model"
)

// PortScanOptions is bound directly to the `scan` command's flags.
type PortScanOptions struct {
	Target      string
	StartPort   int
	EndPort     int
	Concurrency int
	TimeoutMs   int
	Mode        string
	Output      string
}

func NewPortScanOptions() *PortScanOptions {
	return &PortScanOptions{
		StartPort:   1,
		EndPort:     1024,
		Concurrency: 500,
		TimeoutMs:   2500,
		Mode:        "syn",
	}
}

// Validate enforces the ranges named in spec.md §6's CLI flag table.
func (o *PortScanOptions) Validate() error {
	if o.Target == "" {
		return fmt.Errorf("target is required")
	}
	if net.ParseIP(o.Target) == nil || net.ParseIP(o.Target).To4() == nil {
		return fmt.Errorf("target must be a valid IPv4 literal: %q", o.Target)
	}
	if o.StartPort < 1 || o.StartPort > 65535 {
		return fmt.Errorf("start-port out of range [1,65535]: %d", o.StartPort)
	}
	if o.EndPort < 1 || o.EndPort > 65535 {
		return fmt.Errorf("end-port out of range [1,65535]: %d", o.EndPort)
	}
	if o.EndPort < o.StartPort {
		return fmt.Errorf("end-port %d is before start-port %d", o.EndPort, o.StartPort)
	}
	if o.Concurrency < 1 || o.Concurrency > 10000 {
		return fmt.Errorf("concurrency out of range [1,10000]: %d", o.Concurrency)
	}
	if o.TimeoutMs < 1 || o.TimeoutMs > 60000 {
		return fmt.Errorf("timeout out of range [1,60000]: %d", o.TimeoutMs)
	}
	if _, err := model.ParseScanMode(o.Mode); err != nil {
		return err
	}
	return nil
}

// ToEngineConfig builds the engine.Config Validate has already vetted.
func (o *PortScanOptions) ToEngineConfig() (engine.Config, error) {
	mode, err := model.ParseScanMode(o.Mode)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		TargetIP:    net.ParseIP(o.Target).To4(),
		StartPort:   uint16(o.StartPort),
		EndPort:     uint16(o.EndPort),
		Concurrency: o.Concurrency,
		Timeout:     time.Duration(o.TimeoutMs) * time.Millisecond,
		Mode:        mode,
	}, nil
}
