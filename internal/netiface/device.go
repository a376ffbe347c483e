// Package netiface selects the local network interface the scan
// engine addresses frames from/to, and resolves its default gateway.
package netiface

import (
	"net"
	"time"

	"github.com/google/gopacket/pcap"

	"neoscan/internal/errs"
)

// DeviceInterface is the immutable interface context a scan is bound
// to for its whole lifetime: MAC/IPv4/netmask plus the resolved
// default gateway, shared by reference across the engine, the ARP
// resolver and every probe.
type DeviceInterface struct {
	Name        string
	MAC         net.HardwareAddr
	IPv4        net.IP
	Netmask     net.IPMask
	GatewayIPv4 net.IP
}

// New selects the first non-loopback interface that carries a MAC
// address and at least one IPv4 address. Enumeration order is
// OS-defined; the first match wins.
func New() (*DeviceInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, errs.ErrInterfaceSelection
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipNet.IP.To4()
			if ip4 == nil {
				continue
			}

			gw, err := defaultGateway(iface.Name)
			if err != nil {
				return nil, err
			}
			if len(gw.IPv4) == 0 {
				return nil, errs.ErrNoGatewayFound
			}

			return &DeviceInterface{
				Name:        iface.Name,
				MAC:         iface.HardwareAddr,
				IPv4:        ip4,
				Netmask:     ipNet.Mask,
				GatewayIPv4: gw.IPv4[0],
			}, nil
		}
	}

	return nil, errs.ErrInterfaceSelection
}

// CheckLocalDevice reports whether targetIP shares this interface's
// network prefix, used to decide the ARP resolver's target: the host
// itself when local, the default gateway otherwise.
func (d *DeviceInterface) CheckLocalDevice(targetIP net.IP) bool {
	ip4 := targetIP.To4()
	if ip4 == nil || len(d.Netmask) != net.IPv4len {
		return false
	}
	for i := range ip4 {
		if ip4[i]&d.Netmask[i] != d.IPv4[i]&d.Netmask[i] {
			return false
		}
	}
	return true
}

// datalinkSnaplen is generous enough for any frame this package
// builds (Ethernet + IPv4 + TCP options never appear, ARP, ICMP).
const datalinkSnaplen = 1600

// OpenDatalink opens one Ethernet-level raw handle on this interface.
// Callers (the Link Channel and the ARP Resolver) wrap it in their own
// sender/receiver abstractions.
func (d *DeviceInterface) OpenDatalink(readTimeout int) (*pcap.Handle, error) {
	handle, err := pcap.OpenLive(d.Name, datalinkSnaplen, true, time.Duration(readTimeout)*time.Millisecond)
	if err != nil {
		return nil, errs.ErrLinkOpenFailed
	}
	return handle, nil
}

// NewTaskChannel creates a bounded many-producer/single-consumer
// channel with size slots. ProbeMap.Register allocates its own
// one-slot delivery channels and does not call it.
func NewTaskChannel[T any](size int) chan T {
	return make(chan T, size)
}
