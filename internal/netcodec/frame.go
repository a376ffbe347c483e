// Package netcodec builds and parses the Ethernet/ARP, Ethernet+IPv4+TCP,
// +UDP and +ICMP frames the scan engine sends and receives. Every
// builder produces a self-contained byte buffer with checksums
// computed by gopacket; every parser reports bit-for-bit what arrived.
package netcodec

import (
	"math/rand"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// serializeOpts is shared by every builder: checksums and header
// lengths are always derived from the layers, never hand-computed.
var serializeOpts = gopacket.SerializeOptions{
	FixLengths:       true,
	ComputeChecksums: true,
}

// ethernetHeaderLen is the size of the Ethernet II header every
// builder puts first.
const ethernetHeaderLen = 14

// serialize expects l[0] to be the Ethernet layer. gopacket's Ethernet
// serializer pads any frame shorter than 60 bytes with trailing zeros;
// that padding is cut off so the frame is exactly its layer stack.
func serialize(l ...gopacket.SerializableLayer) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, serializeOpts, l[1:]...); err != nil {
		return nil, err
	}
	inner := len(buf.Bytes())
	if err := l[0].SerializeTo(buf, serializeOpts); err != nil {
		return nil, err
	}
	out := make([]byte, ethernetHeaderLen+inner)
	copy(out, buf.Bytes())
	return out, nil
}

// randomTTL returns a value in [32, 128), the range every IPv4
// builder in this package randomizes TTL within.
func randomTTL() uint8 {
	return uint8(32 + rand.Intn(128-32))
}

func randomIPID() uint16 {
	return uint16(rand.Intn(1 << 16))
}

func ipv4Layer(srcIP, dstIP net.IP, proto layers.IPProtocol) *layers.IPv4 {
	return &layers.IPv4{
		Version:    4,
		IHL:        5,
		TTL:        randomTTL(),
		Id:         randomIPID(),
		Flags:      layers.IPv4DontFragment,
		Protocol:   proto,
		SrcIP:      srcIP.To4(),
		DstIP:      dstIP.To4(),
	}
}

func ethernetLayer(srcMAC, dstMAC net.HardwareAddr, ethType layers.EthernetType) *layers.Ethernet {
	return &layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: ethType,
	}
}

// ParseIPv4Addrs reports the source/destination IPv4 addresses of
// frame, if it decodes as Ethernet+IPv4. The Listener uses this to
// drop any frame not addressed between the scan's target and its own
// interface before handing it to a protocol classifier.
func ParseIPv4Addrs(frame []byte) (src, dst net.IP, ok bool) {
	var eth layers.Ethernet
	var ip4 layers.IPv4

	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet, &eth, &ip4)
	decoded := make([]gopacket.LayerType, 0, 2)
	if err := parser.DecodeLayers(frame, &decoded); err != nil {
		// the transport layer after IPv4 has no decoder here; the
		// layers decoded before it are still usable.
		if _, unsupported := err.(gopacket.UnsupportedLayerType); !unsupported {
			return nil, nil, false
		}
	}
	for _, t := range decoded {
		if t == layers.LayerTypeIPv4 {
			return ip4.SrcIP, ip4.DstIP, true
		}
	}
	return nil, nil, false
}
