package engine

import (
	"net"
	"time"

	"neoscan/internal/model"
)

// Config carries every parameter a scan needs, built by the CLI layer
// from validated flags (spec.md §6).
type Config struct {
	TargetIP    net.IP
	StartPort   uint16
	EndPort     uint16
	Concurrency int
	Timeout     time.Duration
	Mode        model.ScanMode
}
