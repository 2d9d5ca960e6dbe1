package tftp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRRQWRQVectors(t *testing.T) {
	want := []byte{
		0x00, 0x01, 0x6d, 0x65, 0x6d, 0x74, 0x65, 0x73,
		0x74, 0x5f, 0x78, 0x38, 0x36, 0x2e, 0x30, 0x00,
		0x6f, 0x63, 0x74, 0x65, 0x74, 0x00,
	}
	require.Equal(t, want, RRQ("memtest_x86.0", "octet"))

	wantWRQ := append([]byte{}, want...)
	wantWRQ[1] = 0x02
	require.Equal(t, wantWRQ, WRQ("memtest_x86.0", "octet"))
}

func TestACKVectors(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x04, 0x08, 0x59}, ACK(2137))
	require.Equal(t, []byte{0x00, 0x04, 0x00, 0x2b}, ACK(43))
}

func TestDataVector(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x03, 0x00, 0x2b, 1, 2, 3}, Data(43, []byte{1, 2, 3}))
}

func TestErrorVector(t *testing.T) {
	want := []byte{
		0x00, 0x05, 0x00, 0x00, 0x54, 0x46, 0x54, 0x50,
		0x20, 0x41, 0x62, 0x6f, 0x72, 0x74, 0x65, 0x64,
		0x00,
	}
	require.Equal(t, want, Error(0, "TFTP Aborted"))
}

func TestOptionAckEncoding(t *testing.T) {
	got := OptionAck([]NegotiatedOption{{Name: "blksize", Value: "1456"}, {Name: "tsize", Value: "3000"}})
	want := append([]byte{0x00, 0x06}, []byte("blksize\x001456\x00tsize\x003000\x00")...)
	require.Equal(t, want, got)
}

func TestParseRequestWithOptions(t *testing.T) {
	pkt := append(RRQ("f", "octet"), appendOptionPairs("blksize", "1456", "tsize", "0")...)

	req, err := ParseRequest(pkt)
	require.NoError(t, err)
	require.Equal(t, "f", req.Filename)
	require.Equal(t, "octet", req.Mode)
	require.True(t, req.BlkSizeRequested)
	require.Equal(t, uint16(1456), req.BlkSize)
	require.True(t, req.TSizeRequested)
}

func TestParseRequestDefaultsBlockSize(t *testing.T) {
	req, err := ParseRequest(RRQ("f", "octet"))
	require.NoError(t, err)
	require.Equal(t, uint16(DefaultBlockSize), req.BlkSize)
	require.False(t, req.BlkSizeRequested)
}

func TestParseRequestBadOpcode(t *testing.T) {
	_, err := ParseRequest([]byte{0x00, 0x04, 0x00, 0x01})
	require.ErrorIs(t, err, ErrBadOpcode)
}

func TestParseRequestTooShort(t *testing.T) {
	_, err := ParseRequest([]byte{0x00})
	require.ErrorIs(t, err, ErrBadOpcode)
}

func appendOptionPairs(kv ...string) []byte {
	var out []byte
	for _, s := range kv {
		out = append(out, s...)
		out = append(out, 0)
	}
	return out
}
