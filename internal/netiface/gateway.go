package netiface

import "net"

// GatewayAddrs is the per-family result of a default-gateway lookup.
type GatewayAddrs struct {
	IPv4 []net.IP
	IPv6 []net.IP
}

// defaultGateway is implemented once per OS (gateway_linux.go,
// gateway_darwin.go, gateway_windows.go), all sharing this contract:
// given an interface name, return its default IPv4/IPv6 gateways, or
// errs.ErrNoGatewayFound if the interface has no default route.
func defaultGateway(ifaceName string) (*GatewayAddrs, error) {
	return platformDefaultGateway(ifaceName)
}
