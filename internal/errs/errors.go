// Package errs defines the sentinel error kinds shared across the scan
// engine, so callers can classify failures with errors.Is instead of
// string matching.
package errs

import "errors"

var (
	// ErrInterfaceSelection: no suitable IPv4 non-loopback interface.
	ErrInterfaceSelection = errors.New("no suitable non-loopback IPv4 interface found")

	// ErrNoGatewayFound: the gateway resolver backend found no default
	// route for the requested interface.
	ErrNoGatewayFound = errors.New("no default gateway found for interface")

	// ErrArpTimeout: no ARP reply arrived before the deadline.
	ErrArpTimeout = errors.New("arp resolution timed out")

	// ErrLinkOpenFailed: the datalink channel could not be opened.
	ErrLinkOpenFailed = errors.New("failed to open datalink channel")

	// ErrProbeRegister: the rendezvous map has no table to register a
	// probe in.
	ErrProbeRegister = errors.New("failed to register probe rendezvous")

	// ErrProbeSend: the shared link sender failed to transmit a frame.
	ErrProbeSend = errors.New("failed to send probe frame")

	// ErrResultsLockFailed: the results map could not be updated for a
	// finished probe.
	ErrResultsLockFailed = errors.New("failed to record probe result")
)
