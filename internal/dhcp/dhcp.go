// Package dhcp implements the BOOTP/DHCP datagram codec: a fixed 236-octet
// header plus a variable-length option list, per RFC 951 and RFC 2131/2132.
//
// Unlike a packed-struct transmute, every field is read and written at an
// explicit byte offset with a documented width, so the layout is portable
// regardless of the host's struct alignment or endianness.
package dhcp

import (
	"encoding/binary"
)

// Wire layout offsets within the fixed BOOTP header. Widths in comments.
const (
	offOp       = 0  // 1
	offHType    = 1  // 1
	offHLen     = 2  // 1
	offHops     = 3  // 1
	offXID      = 4  // 4
	offSecs     = 8  // 2
	offFlags    = 10 // 2
	offCIAddr   = 12 // 4
	offYIAddr   = 16 // 4
	offSIAddr   = 20 // 4
	offGIAddr   = 24 // 4
	offCHAddr   = 28 // 16
	offSName    = 44 // 64
	offFileName = 108 // 128
	offMCookie  = 236 // 4

	// HeaderSize is the size in octets of the fixed BOOTP header, magic
	// cookie included. The option list follows immediately after.
	HeaderSize = offMCookie + 4

	chaddrLen   = 16
	snameLen    = 64
	filenameLen = 128
)

// MagicCookie is the DHCP magic cookie separating the BOOTP header from the
// option list, per RFC 2131.
const MagicCookie uint32 = 0x63825363

// BOOTP operation codes (DHCPBody.Op).
const (
	OpBootRequest uint8 = 1
	OpBootReply   uint8 = 2
)

// DHCP message type values, the payload of option 53.
const (
	MsgDiscover uint8 = 1
	MsgOffer    uint8 = 2
	MsgRequest  uint8 = 3
	MsgDecline  uint8 = 4
	MsgAck      uint8 = 5
	MsgNak      uint8 = 6
	MsgRelease  uint8 = 7
	MsgInform   uint8 = 8
)

// Well-known option codes used by the PXE boot flow.
const (
	OptPad                  uint8 = 0
	OptSubnetMask           uint8 = 1
	OptRouter               uint8 = 3
	OptDomainNameServer     uint8 = 6
	OptTFTPServerName       uint8 = 66
	OptBootfileName         uint8 = 67
	OptVendorSpecific       uint8 = 43
	OptMessageType          uint8 = 53
	OptServerIdentifier     uint8 = 54
	OptParameterRequestList uint8 = 55
	OptMaxMessageSize       uint8 = 57
	OptClassIdentifier      uint8 = 60
	OptClientIdentifier     uint8 = 61
	OptClientSystemArch     uint8 = 93
	OptClientNetworkID      uint8 = 94
	OptClientMachineID      uint8 = 97
	OptEnd                  uint8 = 255
)

// Body mirrors the fixed 236-octet BOOTP header plus the 4-octet magic
// cookie. Multi-octet fields (XID, Secs, Flags, MCookie) are kept in host
// byte order; SwapEndianess converts them to/from wire (network) order at
// the transport boundary.
type Body struct {
	Op      uint8
	HType   uint8
	HLen    uint8
	Hops    uint8
	XID     uint32
	Secs    uint16
	Flags   uint16
	CIAddr  [4]byte
	YIAddr  [4]byte
	SIAddr  [4]byte
	GIAddr  [4]byte
	CHAddr  [16]byte
	SName   [64]byte
	Name    [128]byte // Filename, aka "file" in RFC 2131; boot file name.
	MCookie uint32
}

// NewBody returns a zero body with MCookie set to MagicCookie; every other
// field starts at its RFC 2131 zero value (no address, no hardware type).
func NewBody() Body {
	return Body{MCookie: MagicCookie}
}

// SwapEndianess returns a copy of body with XID, Secs, Flags and MCookie
// byte-reversed. Call once at the network boundary, converting host-ordered
// memory to/from wire order; the operation is its own inverse.
func (b Body) SwapEndianess() Body {
	out := b
	out.XID = swap32(b.XID)
	out.Secs = swap16(b.Secs)
	out.Flags = swap16(b.Flags)
	out.MCookie = swap32(b.MCookie)
	return out
}

func swap16(v uint16) uint16 {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return binary.LittleEndian.Uint16(buf[:])
}

func swap32(v uint32) uint32 {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return binary.LittleEndian.Uint32(buf[:])
}

// marshal writes body in its packed wire layout to a HeaderSize buffer.
func (b Body) marshal(dst []byte) {
	_ = dst[HeaderSize-1]
	dst[offOp] = b.Op
	dst[offHType] = b.HType
	dst[offHLen] = b.HLen
	dst[offHops] = b.Hops
	binary.BigEndian.PutUint32(dst[offXID:], b.XID)
	binary.BigEndian.PutUint16(dst[offSecs:], b.Secs)
	binary.BigEndian.PutUint16(dst[offFlags:], b.Flags)
	copy(dst[offCIAddr:offCIAddr+4], b.CIAddr[:])
	copy(dst[offYIAddr:offYIAddr+4], b.YIAddr[:])
	copy(dst[offSIAddr:offSIAddr+4], b.SIAddr[:])
	copy(dst[offGIAddr:offGIAddr+4], b.GIAddr[:])
	copy(dst[offCHAddr:offCHAddr+chaddrLen], b.CHAddr[:])
	copy(dst[offSName:offSName+snameLen], b.SName[:])
	copy(dst[offFileName:offFileName+filenameLen], b.Name[:])
	binary.BigEndian.PutUint32(dst[offMCookie:], b.MCookie)
}

// unmarshalBody reads the fixed header out of a buffer of at least
// HeaderSize octets, using the low 32 bits of XID/Secs/Flags/MCookie
// verbatim (no byte-swap performed here; see SwapEndianess).
func unmarshalBody(src []byte) Body {
	var b Body
	b.Op = src[offOp]
	b.HType = src[offHType]
	b.HLen = src[offHLen]
	b.Hops = src[offHops]
	b.XID = binary.BigEndian.Uint32(src[offXID:])
	b.Secs = binary.BigEndian.Uint16(src[offSecs:])
	b.Flags = binary.BigEndian.Uint16(src[offFlags:])
	copy(b.CIAddr[:], src[offCIAddr:offCIAddr+4])
	copy(b.YIAddr[:], src[offYIAddr:offYIAddr+4])
	copy(b.SIAddr[:], src[offSIAddr:offSIAddr+4])
	copy(b.GIAddr[:], src[offGIAddr:offGIAddr+4])
	copy(b.CHAddr[:], src[offCHAddr:offCHAddr+chaddrLen])
	copy(b.SName[:], src[offSName:offSName+snameLen])
	copy(b.Name[:], src[offFileName:offFileName+filenameLen])
	b.MCookie = binary.BigEndian.Uint32(src[offMCookie:])
	return b
}

// SetString copies s into dst, zero-padding the remainder. Truncates if s is
// longer than dst.
func SetString(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}
