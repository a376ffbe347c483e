//go:build windows

package netiface

import (
	"net"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"neoscan/internal/errs"
)

// platformDefaultGateway walks the adapter list returned by
// GetAdaptersAddresses, matching ifaceName against each adapter's
// friendly name, and returns the gateway addresses published in its
// IP_ADAPTER_ADDRESSES.FirstGatewayAddress chain.
//
// The first call uses a 15000-byte buffer; on ERROR_BUFFER_OVERFLOW the
// call is repeated with the size it reported, up to three calls in all.
// There is no separate size-probing call with an empty buffer.
func platformDefaultGateway(ifaceName string) (*GatewayAddrs, error) {
	var size uint32 = 15000
	var buf []byte

	for attempt := 0; attempt < 3; attempt++ {
		buf = make([]byte, size)
		err := windows.GetAdaptersAddresses(
			windows.AF_UNSPEC,
			windows.GAA_FLAG_INCLUDE_PREFIX,
			0,
			(*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0])),
			&size,
		)
		if err == nil {
			break
		}
		if err == windows.ERROR_BUFFER_OVERFLOW {
			continue
		}
		return nil, errs.ErrNoGatewayFound
	}

	out := &GatewayAddrs{}
	found := false

	for addr := (*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0])); addr != nil; addr = addr.Next {
		name := windows.UTF16PtrToString(addr.FriendlyName)
		if !strings.EqualFold(name, ifaceName) {
			continue
		}
		found = true

		for gw := addr.FirstGatewayAddress; gw != nil; gw = gw.Next {
			sa, err := gw.Address.Sockaddr.Sockaddr()
			if err != nil {
				continue
			}
			switch a := sa.(type) {
			case *windows.SockaddrInet4:
				out.IPv4 = append(out.IPv4, net.IP(a.Addr[:]))
			case *windows.SockaddrInet6:
				out.IPv6 = append(out.IPv6, net.IP(a.Addr[:]))
			}
		}
	}

	if !found || (len(out.IPv4) == 0 && len(out.IPv6) == 0) {
		return nil, errs.ErrNoGatewayFound
	}
	return out, nil
}
