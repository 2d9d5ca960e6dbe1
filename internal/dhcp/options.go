package dhcp

import "github.com/pkg/errors"

// Option is a single (code, length, value) triple from the DHCP option
// list. Codes OptPad and OptEnd are singletons with no value; for every
// other code Length equals len(Value).
type Option struct {
	Code   uint8
	Length uint8
	Value  []byte
}

// ErrShortFrame is returned by FromBytes when the input is smaller than the
// fixed BOOTP header.
var ErrShortFrame = errors.New("dhcp: frame shorter than fixed header")

// Dgram is a full DHCP/BOOTP datagram: the fixed header plus its ordered
// option list. Option order is significant (it is preserved on parse and
// reproduced verbatim on serialize).
type Dgram struct {
	Body    Body
	Options []Option
}

// FromBytes parses buf into a Dgram. Returns ErrShortFrame if buf is
// shorter than HeaderSize. Options are read sequentially starting right
// after the magic cookie:
//
//   - a 0x00 byte is a pad: one option with Code=0, Length=0 is emitted and
//     parsing advances by one byte.
//   - 0xFF ends the option list: a Code=0xFF, Length=0 option is appended
//     and parsing stops (bytes after it, if any, are not parsed).
//   - any other byte is a code; the following byte is a length L; the next
//     L bytes are the value. If fewer than L+2 bytes remain, parsing stops
//     without appending that malformed trailing option.
//   - parsing also stops when the input is exhausted.
func FromBytes(buf []byte) (Dgram, error) {
	if len(buf) < HeaderSize {
		return Dgram{}, ErrShortFrame
	}
	d := Dgram{Body: unmarshalBody(buf)}
	d.Options = readOptions(buf[HeaderSize:])
	return d, nil
}

func readOptions(data []byte) []Option {
	options := make([]Option, 0, 16)
	idx := 0
	for {
		if idx >= len(data) {
			break
		}
		code := data[idx]
		if code == OptPad {
			options = append(options, Option{Code: OptPad})
			idx++
			continue
		}
		if code == OptEnd {
			options = append(options, Option{Code: OptEnd})
			break
		}
		if idx+1 >= len(data) {
			break
		}
		length := data[idx+1]
		if idx+2+int(length) > len(data) {
			break
		}
		value := make([]byte, length)
		copy(value, data[idx+2:idx+2+int(length)])
		options = append(options, Option{Code: code, Length: length, Value: value})
		idx += 2 + int(length)
	}
	return options
}

// Bytes serializes d back to wire format: the fixed header verbatim,
// followed by each option's code/length/value in order. OptPad and OptEnd
// are emitted with no value bytes. No end marker is inserted automatically:
// callers build it via Builder.End or append one manually.
func (d Dgram) Bytes() []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(d.Options)*4)
	d.Body.marshal(out)
	for _, opt := range d.Options {
		out = append(out, opt.Code)
		if opt.Code == OptPad || opt.Code == OptEnd {
			continue
		}
		out = append(out, opt.Length)
		out = append(out, opt.Value...)
	}
	return out
}

// SwapEndianess returns a copy of d with the header's multi-octet fields
// byte-reversed; see Body.SwapEndianess.
func (d Dgram) SwapEndianess() Dgram {
	return Dgram{Body: d.Body.SwapEndianess(), Options: d.Options}
}

// Option returns the value of the first option with the given code, or
// (nil, false) if no such option is present.
func (d Dgram) Option(code uint8) ([]byte, bool) {
	for _, opt := range d.Options {
		if opt.Code == code {
			return opt.Value, true
		}
	}
	return nil, false
}
