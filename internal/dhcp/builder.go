package dhcp

// Builder is a fluent constructor for a Dgram: set a body, append options in
// order, close with End, then Build. The three operations (body/option/end)
// compose via a mutable receiver chain rather than a consuming move.
type Builder struct {
	body    *Body
	options []Option
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetBody sets the datagram's fixed header.
func (b *Builder) SetBody(body Body) *Builder {
	b.body = &body
	return b
}

// Option appends a (code, value) option. Length is derived from len(value);
// panics if value is longer than 255 bytes, matching the wire's 1-byte
// length field.
func (b *Builder) Option(code uint8, value []byte) *Builder {
	if len(value) > 255 {
		panic("dhcp: option value too long")
	}
	var cp []byte
	if len(value) > 0 {
		cp = make([]byte, len(value))
		copy(cp, value)
	}
	b.options = append(b.options, Option{Code: code, Length: uint8(len(cp)), Value: cp})
	return b
}

// End appends the 0xFF end marker.
func (b *Builder) End() *Builder {
	return b.Option(OptEnd, nil)
}

// Build returns the assembled Dgram, or false if no body has been set.
func (b *Builder) Build() (Dgram, bool) {
	if b.body == nil {
		return Dgram{}, false
	}
	return Dgram{Body: *b.body, Options: b.options}, true
}
