// Package link wraps one Ethernet-level raw send/receive pair bound
// to the chosen interface: a sender shared (under lock) by every
// probe task, and a receiver owned exclusively by the Listener.
package link

import (
	"sync"

	"github.com/google/gopacket/pcap"

	"neoscan/internal/errs"
)

// Sender transmits a single raw frame.
type Sender interface {
	Send(frame []byte) error
}

// Receiver blocks for the next raw frame.
type Receiver interface {
	ReadFrame() ([]byte, error)
}

// Channel is a matched sender/receiver pair; tests substitute the
// in-memory implementation in mock.go for the pcap-backed one below.
type Channel struct {
	Sender   Sender
	Receiver Receiver
}

// pcapSender guards the shared handle with a mutex: spec.md §5 names
// the link sender as a resource locked across exactly one send call.
type pcapSender struct {
	mu     sync.Mutex
	handle *pcap.Handle
}

func (s *pcapSender) Send(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.handle.WritePacketData(frame); err != nil {
		return errs.ErrProbeSend
	}
	return nil
}

// pcapReceiver is never shared; only the Listener reads from it.
type pcapReceiver struct {
	handle *pcap.Handle
}

func (r *pcapReceiver) ReadFrame() ([]byte, error) {
	for {
		data, _, err := r.handle.ReadPacketData()
		if err == pcap.NextErrorTimeoutExpired {
			continue
		}
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}
}

// Open wraps an already-opened pcap handle into a Channel. The
// handle's lifetime is owned by the caller (the Interface Facade);
// Open does not close it.
func Open(handle *pcap.Handle) *Channel {
	return &Channel{
		Sender:   &pcapSender{handle: handle},
		Receiver: &pcapReceiver{handle: handle},
	}
}
