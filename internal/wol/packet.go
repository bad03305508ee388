package wol

import (
	"fmt"

	mdwol "github.com/mdlayher/wol"
)

const (
	// DefaultPort is the conventional Wake-on-LAN UDP port.
	DefaultPort = 9

	syncStreamSize = 6
	repetitions    = 16

	// MagicPacketSize is the size of a magic packet without password (6 + 16*6 = 102 bytes).
	MagicPacketSize = syncStreamSize + repetitions*MACSize
)

// MagicPacket is the payload recognized by Wake-on-LAN capable interfaces:
// 6 bytes of 0xFF followed by the target MAC repeated 16 times.
type MagicPacket [MagicPacketSize]byte

// Build constructs the magic packet for mac.
func Build(mac MAC) MagicPacket {
	var p MagicPacket
	for i := 0; i < syncStreamSize; i++ {
		p[i] = 0xFF
	}
	for i := 0; i < repetitions; i++ {
		copy(p[syncStreamSize+i*MACSize:], mac[:])
	}
	return p
}

// Bytes returns the packet as a new byte slice.
func (p MagicPacket) Bytes() []byte {
	b := make([]byte, MagicPacketSize)
	copy(b, p[:])
	return b
}

// Target returns the MAC address the packet wakes.
func (p MagicPacket) Target() MAC {
	var mac MAC
	copy(mac[:], p[syncStreamSize:syncStreamSize+MACSize])
	return mac
}

// Decode validates a received datagram as a magic packet and returns its
// target and optional SecureOn password.
func Decode(b []byte) (MAC, []byte, error) {
	var p mdwol.MagicPacket
	if err := p.UnmarshalBinary(b); err != nil {
		return MAC{}, nil, fmt.Errorf("decoding magic packet: %w", err)
	}
	if len(p.Target) != MACSize {
		return MAC{}, nil, fmt.Errorf("decoding magic packet: unexpected target length %d", len(p.Target))
	}

	var mac MAC
	copy(mac[:], p.Target)
	if len(p.Password) == 0 {
		return mac, nil, nil
	}
	return mac, p.Password, nil
}
