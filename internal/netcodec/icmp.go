package netcodec

import (
	"encoding/binary"
	"math/rand"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"neoscan/internal/model"
)

const (
	protoTCP = 6
	protoUDP = 17
)

// BuildICMPEcho builds a 14+20+8-byte Ethernet+IPv4+ICMP echo
// request/reply with a random identifier and sequence. Not emitted by
// any core scan mode; part of the codec surface for reachability
// probes and round-trip tests.
func BuildICMPEcho(srcMAC, dstMAC net.HardwareAddr, srcIP, dstIP net.IP, reply bool) ([]byte, error) {
	eth := ethernetLayer(srcMAC, dstMAC, layers.EthernetTypeIPv4)
	ip4 := ipv4Layer(srcIP, dstIP, layers.IPProtocolICMPv4)

	typ := layers.ICMPv4TypeEchoRequest
	if reply {
		typ = layers.ICMPv4TypeEchoReply
	}
	icmp := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(typ, 0),
		Id:       uint16(rand.Intn(1 << 16)),
		Seq:      uint16(rand.Intn(1 << 16)),
	}

	return serialize(eth, ip4, icmp)
}

// ClassifyICMPUnreachable decodes a destination-unreachable frame,
// recovers the (source, destination) ports of the triggering TCP or
// UDP segment from the embedded original IPv4 header, and maps the
// ICMP code to a status per the triggering protocol. ok is false for
// any frame that isn't a destination-unreachable, or whose code maps
// to "ignore".
func ClassifyICMPUnreachable(frame []byte) (key model.ProbeKey, status model.PortStatus, ok bool) {
	var eth layers.Ethernet
	var ip4 layers.IPv4
	var icmp layers.ICMPv4

	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet, &eth, &ip4, &icmp)
	decoded := make([]gopacket.LayerType, 0, 3)
	if err := parser.DecodeLayers(frame, &decoded); err != nil {
		// the embedded original datagram decodes as an unsupported
		// payload layer; the ICMP layer itself is still usable.
		if _, unsupported := err.(gopacket.UnsupportedLayerType); !unsupported {
			return key, status, false
		}
	}

	sawICMP := false
	for _, t := range decoded {
		if t == layers.LayerTypeICMPv4 {
			sawICMP = true
		}
	}
	if !sawICMP || icmp.TypeCode.Type() != layers.ICMPv4TypeDestinationUnreachable {
		return key, status, false
	}

	embedded := icmp.LayerPayload()
	if len(embedded) < 20 {
		return key, status, false
	}
	ihl := int(embedded[0]&0x0f) * 4
	if ihl < 20 || len(embedded) < ihl+4 {
		return key, status, false
	}
	triggeringProto := embedded[9]
	ports := embedded[ihl : ihl+4]
	origSrcPort := binary.BigEndian.Uint16(ports[0:2])
	origDstPort := binary.BigEndian.Uint16(ports[2:4])
	key = model.ProbeKey{SourcePort: origSrcPort, TargetPort: origDstPort}

	code := icmp.TypeCode.Code()
	switch code {
	case layers.ICMPv4CodeNet, layers.ICMPv4CodeHost, layers.ICMPv4CodeProtocol,
		layers.ICMPv4CodeNetAdminProhibited, layers.ICMPv4CodeHostAdminProhibited,
		layers.ICMPv4CodeCommAdminProhibited:
		return key, model.Filtered, true
	case layers.ICMPv4CodePort:
		if triggeringProto == protoUDP {
			return key, model.Closed, true
		}
		return key, status, false
	default:
		return key, status, false
	}
}
