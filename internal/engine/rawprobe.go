package engine

import (
	"math/rand"
	"net"
	"time"

	"neoscan/internal/errs"
	"neoscan/internal/link"
	"neoscan/internal/logger"
	"neoscan/internal/model"
	"neoscan/internal/netcodec"
)

// tcpFlagsFor maps a raw ScanMode to the TCP control bits its probe
// sends, per spec.md §4.6 step 3.
func tcpFlagsFor(mode model.ScanMode) netcodec.TCPFlags {
	switch mode {
	case model.Syn:
		return netcodec.TCPFlags{SYN: true}
	case model.Fin:
		return netcodec.TCPFlags{FIN: true}
	case model.Xmas:
		return netcodec.TCPFlags{FIN: true, PSH: true, URG: true}
	case model.Ack:
		return netcodec.TCPFlags{ACK: true}
	default: // Null
		return netcodec.TCPFlags{}
	}
}

// defaultOnSilence is the status assigned when a raw-mode probe's
// timeout expires without a classified reply, per spec.md §4.6.
func defaultOnSilence(mode model.ScanMode) model.PortStatus {
	switch mode {
	case model.Syn, model.Ack:
		return model.Filtered
	default: // Null, Fin, Xmas, Udp
		return model.OpenFiltered
	}
}

// ephemeralPort draws a random source port from the mode-appropriate
// window (spec.md §4.6 step 1).
func ephemeralPort(mode model.ScanMode) uint16 {
	if mode == model.Udp {
		return uint16(49152 + rand.Intn(65535-49152))
	}
	return uint16(60000 + rand.Intn(65000-60000))
}

// rawProbe registers a rendezvous, builds and transmits the frame for
// the given mode, waits for the listener's delivery or a timeout, and
// returns the resulting status. It never returns an error to the
// caller: ProbeRegister/ProbeSend failures degrade to Filtered per
// spec.md §7's propagation policy, and are logged once.
func rawProbe(dev deviceView, ch *link.Channel, probes *ProbeMap, targetMAC net.HardwareAddr, mode model.ScanMode, targetPort uint16, timeout time.Duration) model.PortStatus {
	srcPort := ephemeralPort(mode)
	key := model.ProbeKey{SourcePort: srcPort, TargetPort: targetPort}

	delivery, err := probes.Register(key)
	if err != nil {
		logger.Warnf("probe register failed for port %d: %v", targetPort, errs.ErrProbeRegister)
		return model.Filtered
	}
	defer probes.Remove(key)

	frame, buildErr := buildFrame(dev, targetMAC, mode, srcPort, targetPort)
	if buildErr != nil {
		logger.Warnf("probe build failed for port %d: %v", targetPort, buildErr)
		return model.Filtered
	}

	if err := ch.Sender.Send(frame); err != nil {
		logger.Warnf("probe send failed for port %d: %v", targetPort, errs.ErrProbeSend)
		return model.Filtered
	}

	select {
	case status := <-delivery:
		return status
	case <-time.After(timeout):
		return defaultOnSilence(mode)
	}
}

// deviceView is the minimal device context a probe needs to build a
// frame; engine.go satisfies it with boundDevice, which wraps a
// *netiface.DeviceInterface and the scan's target IP.
type deviceView interface {
	Self() (mac net.HardwareAddr, ip net.IP)
	Peer() net.IP
}

func buildFrame(dev deviceView, targetMAC net.HardwareAddr, mode model.ScanMode, srcPort, targetPort uint16) ([]byte, error) {
	mac, ip := dev.Self()
	peer := dev.Peer()

	if mode == model.Udp {
		return netcodec.BuildUDP(mac, targetMAC, ip, peer, srcPort, targetPort)
	}
	return netcodec.BuildTCP(mac, targetMAC, ip, peer, srcPort, targetPort, tcpFlagsFor(mode))
}
