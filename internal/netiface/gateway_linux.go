//go:build linux

package netiface

import (
	"github.com/vishvananda/netlink"

	"neoscan/internal/errs"
)

// platformDefaultGateway resolves ifaceName's numeric index via a link
// dump, then walks the route table for the default route (zero-length
// destination prefix) whose output interface matches that index,
// splitting gateways by address family.
func platformDefaultGateway(ifaceName string) (*GatewayAddrs, error) {
	link, err := netlink.LinkByName(ifaceName)
	if err != nil {
		return nil, errs.ErrNoGatewayFound
	}
	index := link.Attrs().Index

	out := &GatewayAddrs{}

	for _, family := range []int{netlink.FAMILY_V4, netlink.FAMILY_V6} {
		routes, err := netlink.RouteList(nil, family)
		if err != nil {
			continue
		}
		for _, r := range routes {
			if r.Dst != nil {
				// a non-nil Dst means this isn't the zero-prefix default route
				continue
			}
			if r.LinkIndex != index || r.Gw == nil {
				continue
			}
			if ip4 := r.Gw.To4(); ip4 != nil {
				out.IPv4 = append(out.IPv4, ip4)
			} else {
				out.IPv6 = append(out.IPv6, r.Gw)
			}
		}
	}

	if len(out.IPv4) == 0 && len(out.IPv6) == 0 {
		return nil, errs.ErrNoGatewayFound
	}
	return out, nil
}
