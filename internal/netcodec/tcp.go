package netcodec

import (
	"math/rand"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"neoscan/internal/model"
)

// TCPFlags is the set of TCP control bits a raw-mode probe sends.
// Mode-to-flags mapping (SYN, NULL=none, FIN, XMAS=FIN|PSH|URG, ACK)
// lives in the engine package, which builds one of these per mode.
type TCPFlags struct {
	SYN, ACK, FIN, PSH, URG, RST bool
}

// BuildTCP builds a 14+20+20-byte Ethernet+IPv4+TCP frame with the
// given flags: randomized sequence, zero acknowledgement, window
// 64240, 5-word data offset, full pseudo-header checksum.
func BuildTCP(srcMAC, dstMAC net.HardwareAddr, srcIP, dstIP net.IP, srcPort, dstPort uint16, flags TCPFlags) ([]byte, error) {
	eth := ethernetLayer(srcMAC, dstMAC, layers.EthernetTypeIPv4)
	ip4 := ipv4Layer(srcIP, dstIP, layers.IPProtocolTCP)
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(srcPort),
		DstPort: layers.TCPPort(dstPort),
		Seq:     rand.Uint32(),
		Ack:     0,
		DataOffset: 5,
		Window:  64240,
		SYN:     flags.SYN,
		ACK:     flags.ACK,
		FIN:     flags.FIN,
		PSH:     flags.PSH,
		URG:     flags.URG,
		RST:     flags.RST,
	}
	tcp.SetNetworkLayerForChecksum(ip4)

	return serialize(eth, ip4, tcp)
}

// ClassifyTCPReply decodes frame and, if it carries a TCP segment,
// returns the probe key it answers plus the inferred status: SYN+ACK
// set -> Open, RST set -> Closed. Any other flag combination yields
// ok=false (no classification).
func ClassifyTCPReply(frame []byte) (key model.ProbeKey, status model.PortStatus, ok bool) {
	var eth layers.Ethernet
	var ip4 layers.IPv4
	var tcp layers.TCP

	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet, &eth, &ip4, &tcp)
	decoded := make([]gopacket.LayerType, 0, 3)
	if err := parser.DecodeLayers(frame, &decoded); err != nil {
		return key, status, false
	}

	sawTCP := false
	for _, t := range decoded {
		if t == layers.LayerTypeTCP {
			sawTCP = true
		}
	}
	if !sawTCP {
		return key, status, false
	}

	key = model.ProbeKey{SourcePort: uint16(tcp.DstPort), TargetPort: uint16(tcp.SrcPort)}

	switch {
	case tcp.SYN && tcp.ACK:
		return key, model.Open, true
	case tcp.RST:
		return key, model.Closed, true
	default:
		return key, status, false
	}
}
