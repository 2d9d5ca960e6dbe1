// Package pxe builds the byte string placed in DHCP option 43
// (vendor-specific information) for PXE boot, per the PXE specification
// section 3.2.3 and RFC 2132 section 8.4.
package pxe

// Sub-option codes within the PXE vendor-options block.
const (
	OptDiscoveryControl uint8 = 6
	OptMCastAddress     uint8 = 7
	OptBootServers      uint8 = 8
	OptBootMenu         uint8 = 9
	OptMenuPrompt       uint8 = 10
	OptEnd              uint8 = 255
)

// Discovery-control bits for sub-option 6.
const (
	discoveryDisableBroadcast uint8 = 1 << 0
	discoveryDisableMulticast uint8 = 1 << 1
	discoveryAcceptListOnly   uint8 = 1 << 2
	discoveryDownloadDirect   uint8 = 1 << 3
)

type option struct {
	code uint8
	data []byte
}

// Builder is a fluent constructor for the PXE vendor-options byte string.
// Each call appends a sub-option; Build concatenates them in call order.
type Builder struct {
	options []option
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Option appends a raw (code, data) sub-option.
func (b *Builder) Option(code uint8, data []byte) *Builder {
	cp := make([]byte, len(data))
	copy(cp, data)
	b.options = append(b.options, option{code: code, data: cp})
	return b
}

// Start appends the PXE_DISCOVERY_CONTROL sub-option (6). It always
// disables multicast discovery and restricts servers to the boot-servers
// list (bits 1 and 2); when useMenu is false it additionally sets bit 3 so
// the client downloads the boot file directly without prompting a menu.
func (b *Builder) Start(useMenu bool) *Builder {
	byt := discoveryDisableMulticast | discoveryAcceptListOnly
	if !useMenu {
		byt |= discoveryDownloadDirect
	}
	return b.Option(OptDiscoveryControl, []byte{byt})
}

// End appends the PXE end marker (255). Per the PXE spec, unlike every
// other sub-option, the end marker carries no length byte on emission.
func (b *Builder) End() *Builder {
	return b.Option(OptEnd, nil)
}

// MenuPrompt appends sub-option 10: a 1-byte timeout followed by the prompt
// text.
func (b *Builder) MenuPrompt(timeout uint8, text string) *Builder {
	data := make([]byte, 0, 1+len(text))
	data = append(data, timeout)
	data = append(data, text...)
	return b.Option(OptMenuPrompt, data)
}

// MenuItems appends sub-option 9: for each item, a fixed server type (8, 0)
// followed by a 1-byte description length and the description bytes.
func (b *Builder) MenuItems(items []string) *Builder {
	var data []byte
	for _, item := range items {
		data = append(data, 8, 0, uint8(len(item)))
		data = append(data, item...)
	}
	return b.Option(OptBootMenu, data)
}

// BootServers appends sub-option 8: a fixed type field (0, 0), a 1-byte
// count, then that many 4-octet IPv4 addresses.
func (b *Builder) BootServers(ips [][4]byte) *Builder {
	data := make([]byte, 0, 3+4*len(ips))
	data = append(data, 0, 0, uint8(len(ips)))
	for _, ip := range ips {
		data = append(data, ip[:]...)
	}
	return b.Option(OptBootServers, data)
}

// MCast appends sub-option 7: the 4-octet multicast discovery address.
func (b *Builder) MCast(addr [4]byte) *Builder {
	return b.Option(OptMCastAddress, addr[:])
}

// Build concatenates all appended sub-options into the opaque byte string
// for DHCP option 43. Every sub-option emits code, length, value, except
// the end marker, which emits only its code. This asymmetry is intentional
// and must be preserved for PXE firmware to parse the block correctly.
func (b *Builder) Build() []byte {
	var out []byte
	for _, opt := range b.options {
		out = append(out, opt.code)
		if opt.code != OptEnd {
			out = append(out, uint8(len(opt.data)))
		}
		out = append(out, opt.data...)
	}
	return out
}
