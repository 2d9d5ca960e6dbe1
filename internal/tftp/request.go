package tftp

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
)

// ErrBadOpcode is returned when a request packet's opcode is neither RRQ nor
// WRQ.
var ErrBadOpcode = errors.New("tftp: invalid request opcode")

// Request is a parsed RRQ/WRQ: filename, transfer mode, and any recognized
// options.
type Request struct {
	Opcode   uint16
	Filename string
	Mode     string
	BlkSize  uint16 // negotiated block size, DefaultBlockSize if not requested.
	BlkSizeRequested bool
	TSizeRequested   bool
}

// ParseRequest parses an RRQ or WRQ packet. Bytes 0-1 are the opcode; the
// remainder is a sequence of NUL-terminated ASCII strings: filename, mode,
// then zero or more (name, value) option pairs, paired two at a time.
// Unknown options are ignored; an unpaired trailing entry is discarded.
func ParseRequest(pkt []byte) (Request, error) {
	if len(pkt) < 2 {
		return Request{}, ErrBadOpcode
	}
	op := Opcode(pkt)
	if op != OpRRQ && op != OpWRQ {
		return Request{}, ErrBadOpcode
	}

	parts := bytes.Split(pkt[2:], []byte{0})
	// A well-formed request ends in a NUL, so splitting leaves a trailing
	// empty part; drop it so it isn't mistaken for an option name.
	if len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 {
		return Request{}, errors.New("tftp: request missing filename or mode")
	}

	req := Request{Opcode: op, Filename: string(parts[0]), Mode: string(parts[1]), BlkSize: DefaultBlockSize}

	rest := parts[2:]
	for i := 0; i+1 < len(rest); i += 2 {
		name := string(rest[i])
		value := string(rest[i+1])
		switch name {
		case "blksize":
			n, err := strconv.ParseUint(value, 10, 16)
			if err == nil {
				req.BlkSize = uint16(n)
				req.BlkSizeRequested = true
			}
		case "tsize":
			req.TSizeRequested = true
		}
	}
	return req, nil
}
