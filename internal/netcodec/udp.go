package netcodec

import (
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"neoscan/internal/model"
)

// BuildUDP builds a 14+20+8-byte Ethernet+IPv4+UDP frame: a
// header-only (empty payload) datagram with a full pseudo-header
// checksum.
func BuildUDP(srcMAC, dstMAC net.HardwareAddr, srcIP, dstIP net.IP, srcPort, dstPort uint16) ([]byte, error) {
	eth := ethernetLayer(srcMAC, dstMAC, layers.EthernetTypeIPv4)
	ip4 := ipv4Layer(srcIP, dstIP, layers.IPProtocolUDP)
	udp := &layers.UDP{
		SrcPort: layers.UDPPort(srcPort),
		DstPort: layers.UDPPort(dstPort),
	}
	udp.SetNetworkLayerForChecksum(ip4)

	return serialize(eth, ip4, udp)
}

// ClassifyUDPReply reports the probe key of any UDP segment received
// from the target on the expected port pair; its mere arrival implies
// Open (Udp mode only — used by the listener, not a general decision
// table).
func ClassifyUDPReply(frame []byte) (key model.ProbeKey, ok bool) {
	var eth layers.Ethernet
	var ip4 layers.IPv4
	var udp layers.UDP

	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet, &eth, &ip4, &udp)
	decoded := make([]gopacket.LayerType, 0, 3)
	if err := parser.DecodeLayers(frame, &decoded); err != nil {
		// a UDP payload decodes as an unsupported layer; the UDP header
		// itself is still usable.
		if _, unsupported := err.(gopacket.UnsupportedLayerType); !unsupported {
			return key, false
		}
	}

	for _, t := range decoded {
		if t == layers.LayerTypeUDP {
			return model.ProbeKey{SourcePort: uint16(udp.DstPort), TargetPort: uint16(udp.SrcPort)}, true
		}
	}
	return key, false
}
