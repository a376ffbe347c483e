package engine

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"neoscan/internal/model"
)

// connectProbe attempts a TCP connect to (targetIP, port) with the
// configured timeout and maps the outcome to a status per spec.md
// §4.6's connect-mode table.
func connectProbe(targetIP net.IP, port uint16, timeout time.Duration) model.PortStatus {
	addr := fmt.Sprintf("%s:%d", targetIP.String(), port)
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err == nil {
		conn.Close()
		return model.Open
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.Filtered
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return model.Closed
	}
	if errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return model.Filtered
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, os.ErrDeadlineExceeded) {
			return model.Filtered
		}
	}
	return model.Filtered
}
