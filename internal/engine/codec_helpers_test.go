package engine

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/require"
)

// buildTCPReply constructs a synthetic TCP reply frame the way the
// target would send it back to us, for feeding into a mock channel.
func buildTCPReply(srcMAC, dstMAC net.HardwareAddr, srcIP, dstIP net.IP, srcPort, dstPort uint16, syn, ack, rst bool) ([]byte, error) {
	eth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeIPv4}
	ip4 := &layers.IPv4{Version: 4, IHL: 5, TTL: 64, Protocol: layers.IPProtocolTCP, SrcIP: srcIP.To4(), DstIP: dstIP.To4()}
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(srcPort), DstPort: layers.TCPPort(dstPort),
		DataOffset: 5, Window: 64240,
		SYN: syn, ACK: ack, RST: rst,
	}
	tcp.SetNetworkLayerForChecksum(ip4)

	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, opts, eth, ip4, tcp); err != nil {
		return nil, err
	}
	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())
	return out, nil
}

// decodeTCPRequest reads the (source port, destination port) of a raw
// TCP frame a probe transmitted, independent of any flag combination.
func decodeTCPRequest(frame []byte) (srcPort, dstPort uint16, ok bool) {
	var eth layers.Ethernet
	var ip4 layers.IPv4
	var tcp layers.TCP

	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet, &eth, &ip4, &tcp)
	decoded := make([]gopacket.LayerType, 0, 3)
	if err := parser.DecodeLayers(frame, &decoded); err != nil {
		return 0, 0, false
	}
	for _, lt := range decoded {
		if lt == layers.LayerTypeTCP {
			return uint16(tcp.SrcPort), uint16(tcp.DstPort), true
		}
	}
	return 0, 0, false
}

func decodeUDPRequest(frame []byte) (srcPort, dstPort uint16, ok bool) {
	var eth layers.Ethernet
	var ip4 layers.IPv4
	var udp layers.UDP

	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet, &eth, &ip4, &udp)
	decoded := make([]gopacket.LayerType, 0, 3)
	if err := parser.DecodeLayers(frame, &decoded); err != nil {
		return 0, 0, false
	}
	for _, lt := range decoded {
		if lt == layers.LayerTypeUDP {
			return uint16(udp.SrcPort), uint16(udp.DstPort), true
		}
	}
	return 0, 0, false
}

// buildICMPPortUnreachableForUDP synthesizes a destination-unreachable
// reply as if the target had rejected our UDP probe (ourSrcPort,
// targetPort), the way the Listener would see it off the wire.
func buildICMPPortUnreachableForUDP(t *testing.T, ourSrcPort, targetPort uint16) []byte {
	t.Helper()

	origIP := &layers.IPv4{
		Version: 4, IHL: 5, TTL: 64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    ifaceIP,
		DstIP:    targetIP,
	}
	origUDP := &layers.UDP{
		SrcPort: layers.UDPPort(ourSrcPort),
		DstPort: layers.UDPPort(targetPort),
	}
	origUDP.SetNetworkLayerForChecksum(origIP)

	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	origBuf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(origBuf, opts, origUDP))
	origHeaderBuf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(origHeaderBuf, opts, origIP, origUDP))

	eth := &layers.Ethernet{SrcMAC: targetMAC, DstMAC: ifaceMAC, EthernetType: layers.EthernetTypeIPv4}
	ip4 := &layers.IPv4{Version: 4, IHL: 5, TTL: 64, Protocol: layers.IPProtocolICMPv4, SrcIP: targetIP, DstIP: ifaceIP}
	icmp := &layers.ICMPv4{TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeDestinationUnreachable, layers.ICMPv4CodePort)}

	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip4, icmp, gopacket.Payload(origHeaderBuf.Bytes())))
	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())
	return out
}
