//go:build darwin

package netiface

import (
	"net"
	"syscall"

	"golang.org/x/net/route"

	"neoscan/internal/errs"
)

// platformDefaultGateway dumps the BSD routing table via the PF_ROUTE
// socket interface and picks out the zero-prefix (default) route whose
// outgoing interface matches ifaceName.
func platformDefaultGateway(ifaceName string) (*GatewayAddrs, error) {
	intf, err := net.InterfaceByName(ifaceName)
	if err != nil {
		return nil, errs.ErrNoGatewayFound
	}

	out := &GatewayAddrs{}

	rib, err := route.FetchRIB(syscall.AF_INET, syscall.NET_RT_DUMP, 0)
	if err != nil {
		return nil, errs.ErrNoGatewayFound
	}
	msgs, err := route.ParseRIB(route.RIBTypeRoute, rib)
	if err != nil {
		return nil, errs.ErrNoGatewayFound
	}

	for _, msg := range msgs {
		m, ok := msg.(*route.RouteMessage)
		if !ok || m.Index != intf.Index {
			continue
		}
		if m.Flags&syscall.RTF_GATEWAY == 0 {
			continue
		}
		if len(m.Addrs) <= int(syscall.RTAX_GATEWAY) {
			continue
		}
		dst, ok := m.Addrs[syscall.RTAX_DST].(*route.Inet4Addr)
		if !ok || dst.IP != [4]byte{0, 0, 0, 0} {
			continue
		}
		gw, ok := m.Addrs[syscall.RTAX_GATEWAY].(*route.Inet4Addr)
		if !ok {
			continue
		}
		out.IPv4 = append(out.IPv4, net.IPv4(gw.IP[0], gw.IP[1], gw.IP[2], gw.IP[3]))
	}

	if len(out.IPv4) == 0 && len(out.IPv6) == 0 {
		return nil, errs.ErrNoGatewayFound
	}
	return out, nil
}
