package engine

import (
	"net"
	"runtime"

	"neoscan/internal/link"
	"neoscan/internal/logger"
	"neoscan/internal/model"
	"neoscan/internal/netcodec"
)

// Listener is the single background reader that drains the shared
// link receiver and routes each decoded reply to its waiting probe.
// It must run on a dedicated OS thread: it blocks on a native handle,
// and a cooperative scheduler would starve around it.
type Listener struct {
	receiver  link.Receiver
	probes    *ProbeMap
	targetIP  net.IP
	ifaceIP   net.IP
	mode      model.ScanMode
	done      chan struct{}
}

func NewListener(receiver link.Receiver, probes *ProbeMap, targetIP, ifaceIP net.IP, mode model.ScanMode) *Listener {
	return &Listener{
		receiver: receiver,
		probes:   probes,
		targetIP: targetIP,
		ifaceIP:  ifaceIP,
		mode:     mode,
		done:     make(chan struct{}),
	}
}

// Run pins itself to an OS thread and loops until Stop is called or
// the receiver returns a terminal error.
func (l *Listener) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-l.done:
			return
		default:
		}

		frame, err := l.receiver.ReadFrame()
		if err != nil {
			return
		}
		l.handle(frame)
	}
}

// Stop signals Run to return after its current blocking read.
func (l *Listener) Stop() {
	close(l.done)
}

func (l *Listener) handle(frame []byte) {
	src, dst, ok := netcodec.ParseIPv4Addrs(frame)
	if !ok || !src.Equal(l.targetIP) || !dst.Equal(l.ifaceIP) {
		return
	}

	// Tcp reply classification also applies to Syn/Null/Fin/Xmas/Ack
	// modes, since they all await the same SYN|ACK-or-RST decision.
	if key, status, ok := netcodec.ClassifyTCPReply(frame); ok {
		l.probes.deliver(key, status)
		return
	}

	if l.mode == model.Udp {
		if key, ok := netcodec.ClassifyUDPReply(frame); ok {
			l.probes.deliver(key, model.Open)
			return
		}
	}

	if key, status, ok := netcodec.ClassifyICMPUnreachable(frame); ok {
		l.probes.deliver(key, status)
		return
	}

	logger.Debugf("listener: dropped unclassifiable frame of %d bytes", len(frame))
}
