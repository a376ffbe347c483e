// Package model holds the tagged-variant types shared across the scan
// engine: scan modes, port statuses and the keys that tie a raw-mode
// probe to its listener rendezvous.
package model

import "fmt"

// ScanMode selects the probe builder, the expected reply decoding and
// the default-on-silence status for a scan.
type ScanMode int

const (
	Tcp ScanMode = iota
	Syn
	Null
	Fin
	Xmas
	Ack
	Udp
)

func (m ScanMode) String() string {
	switch m {
	case Tcp:
		return "tcp"
	case Syn:
		return "syn"
	case Null:
		return "null"
	case Fin:
		return "fin"
	case Xmas:
		return "xmas"
	case Ack:
		return "ack"
	case Udp:
		return "udp"
	default:
		return "unknown"
	}
}

// ParseScanMode maps a CLI --mode value to a ScanMode.
func ParseScanMode(s string) (ScanMode, error) {
	switch s {
	case "tcp":
		return Tcp, nil
	case "syn":
		return Syn, nil
	case "null":
		return Null, nil
	case "fin":
		return Fin, nil
	case "xmas":
		return Xmas, nil
	case "ack":
		return Ack, nil
	case "udp":
		return Udp, nil
	default:
		return 0, fmt.Errorf("unknown scan mode %q", s)
	}
}

// IsRaw reports whether the mode requires the link-layer probe path
// (as opposed to an OS-level TCP connect).
func (m ScanMode) IsRaw() bool {
	return m != Tcp
}
