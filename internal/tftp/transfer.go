package tftp

import (
	"io"
	"os"
)

// transfer is per-client TFTP state: the last block number sent, the
// negotiated block size, whether the final (short) block has been
// produced, and the open file handle being read.
type transfer struct {
	blockCnt uint16
	blockSz  uint16
	done     bool
	file     *os.File
	size     int64
}

// nextBlock reads up to blockSz bytes from file, advances blockCnt
// (wrapping modulo 2^16), and marks done when fewer than blockSz bytes were
// read (including the zero-byte case of a file whose length is an exact
// multiple of blockSz). A genuine read error (anything but a clean or
// short-read EOF) is reported via err rather than folded into done, so the
// caller can distinguish end-of-file from a mid-transfer read failure.
func (t *transfer) nextBlock() ([]byte, error) {
	buf := make([]byte, t.blockSz)
	n, err := io.ReadFull(t.file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	t.blockCnt++
	t.done = uint16(n) != t.blockSz
	return buf[:n], nil
}
