package netcodec

import (
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// BroadcastMAC is the fallback next-hop address used when ARP
// resolution times out.
var BroadcastMAC = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// BuildARPRequest builds a 14+28-byte Ethernet+ARP request asking who
// has dstIP, sent from (srcMAC, srcIP).
func BuildARPRequest(srcMAC net.HardwareAddr, srcIP, dstIP net.IP) ([]byte, error) {
	eth := ethernetLayer(srcMAC, BroadcastMAC, layers.EthernetTypeARP)
	arp := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   srcMAC,
		SourceProtAddress: srcIP.To4(),
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
		DstProtAddress:    dstIP.To4(),
	}
	return serialize(eth, arp)
}

// ParseARPReply accepts only a frame whose ethertype is ARP, whose
// operation is reply, and whose sender/target IP and target MAC match
// the expected (peerIP, ourIP, ourMAC) triple. It returns the sender
// MAC on a match.
func ParseARPReply(frame []byte, peerIP, ourIP net.IP, ourMAC net.HardwareAddr) (net.HardwareAddr, bool) {
	var eth layers.Ethernet
	var arp layers.ARP

	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet, &eth, &arp)
	decoded := make([]gopacket.LayerType, 0, 2)
	if err := parser.DecodeLayers(frame, &decoded); err != nil {
		// Ethernet padding after the ARP body decodes as an unsupported
		// payload layer; the ARP layer itself is still usable.
		if _, unsupported := err.(gopacket.UnsupportedLayerType); !unsupported {
			return nil, false
		}
	}

	sawARP := false
	for _, t := range decoded {
		if t == layers.LayerTypeARP {
			sawARP = true
		}
	}
	if !sawARP {
		return nil, false
	}

	if arp.Operation != layers.ARPReply {
		return nil, false
	}
	if !net.IP(arp.SourceProtAddress).Equal(peerIP.To4()) {
		return nil, false
	}
	if !net.IP(arp.DstProtAddress).Equal(ourIP.To4()) {
		return nil, false
	}
	if net.HardwareAddr(arp.DstHwAddress).String() != ourMAC.String() {
		return nil, false
	}

	mac := make(net.HardwareAddr, len(arp.SourceHwAddress))
	copy(mac, arp.SourceHwAddress)
	return mac, true
}
