// Package arp resolves the next-hop MAC address for a target IPv4
// address via a blocking ARP request/reply exchange on its own
// datalink channel, independent of the scan's shared one.
package arp

import (
	"net"
	"time"

	"neoscan/internal/errs"
	"neoscan/internal/link"
	"neoscan/internal/netcodec"
	"neoscan/internal/netiface"
)

// openChannel opens a fresh datalink channel for one ARP exchange, and
// a closer to release it afterwards. spec.md §4.4 requires this
// channel be distinct from the scan's shared one (the Listener/probe
// channel opened separately by Engine.runRaw). Tests substitute a mock
// channel here instead of a real pcap handle.
var openChannel = func(dev *netiface.DeviceInterface, timeout time.Duration) (*link.Channel, func(), error) {
	handle, err := dev.OpenDatalink(int(timeout.Milliseconds()))
	if err != nil {
		return nil, nil, errs.ErrLinkOpenFailed
	}
	return link.Open(handle), func() { handle.Close() }, nil
}

// Resolve opens its own datalink channel, sends one ARP request for
// the resolution target implied by targetIP (the host itself if
// local, the interface's default gateway otherwise), and reads frames
// in a tight loop until a matching reply arrives or timeout elapses.
// On timeout it returns errs.ErrArpTimeout; callers fall back to the
// Ethernet broadcast MAC.
func Resolve(dev *netiface.DeviceInterface, targetIP net.IP, timeout time.Duration) (net.HardwareAddr, error) {
	arpTarget := targetIP
	if !dev.CheckLocalDevice(targetIP) {
		arpTarget = dev.GatewayIPv4
	}

	ch, closeCh, err := openChannel(dev, timeout)
	if err != nil {
		return nil, errs.ErrArpTimeout
	}
	defer closeCh()

	req, err := netcodec.BuildARPRequest(dev.MAC, dev.IPv4, arpTarget)
	if err != nil {
		return nil, errs.ErrArpTimeout
	}
	if err := ch.Sender.Send(req); err != nil {
		return nil, errs.ErrArpTimeout
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		frame, err := readWithDeadline(ch.Receiver, deadline)
		if err != nil {
			break
		}
		if mac, ok := netcodec.ParseARPReply(frame, arpTarget, dev.IPv4, dev.MAC); ok {
			return mac, nil
		}
	}
	return nil, errs.ErrArpTimeout
}

// readWithDeadline bounds a single blocking ReadFrame call so the
// resolver's overall loop still honors timeout even against a
// receiver (mock or pcap) with no native per-call deadline.
func readWithDeadline(r link.Receiver, deadline time.Time) ([]byte, error) {
	type result struct {
		frame []byte
		err   error
	}
	done := make(chan result, 1)
	go func() {
		frame, err := r.ReadFrame()
		done <- result{frame, err}
	}()

	select {
	case res := <-done:
		return res.frame, res.err
	case <-time.After(time.Until(deadline)):
		return nil, errs.ErrArpTimeout
	}
}
