package tftp

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name string, contents []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), contents, 0o644))
}

func TestServerBlockSequencing(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "f", []byte("0123456789")) // 10 bytes

	srv := &Server{Root: FileRoot{Dir: dir}}
	from := netip.MustParseAddrPort("10.0.0.5:1234")

	rrq := append(RRQ("f", "octet"), appendOptionPairs("blksize", "4")...)
	resp, ok := srv.Handle(from, rrq)
	require.True(t, ok)
	require.Equal(t, OpOACK, Opcode(resp))

	resp, ok = srv.Handle(from, ACK(0))
	require.True(t, ok)
	require.Equal(t, Data(1, []byte("0123")), resp)

	resp, ok = srv.Handle(from, ACK(1))
	require.True(t, ok)
	require.Equal(t, Data(2, []byte("4567")), resp)

	resp, ok = srv.Handle(from, ACK(2))
	require.True(t, ok)
	require.Equal(t, Data(3, []byte("89")), resp)

	// Final ACK(3) closes the transfer: no reply, entry removed.
	resp, ok = srv.Handle(from, ACK(3))
	require.True(t, ok)
	require.Nil(t, resp)
	_, exists := srv.transfers[from]
	require.False(t, exists)
}

func TestServerOACKIncludesTsize(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "f", make([]byte, 3000))

	srv := &Server{Root: FileRoot{Dir: dir}}
	from := netip.MustParseAddrPort("10.0.0.5:1234")

	rrq := append(RRQ("f", "octet"), appendOptionPairs("blksize", "1456", "tsize", "0")...)
	resp, ok := srv.Handle(from, rrq)
	require.True(t, ok)

	want := OptionAck([]NegotiatedOption{{Name: "blksize", Value: "1456"}, {Name: "tsize", Value: "3000"}})
	require.Equal(t, want, resp)
}

func TestServerFileNotFound(t *testing.T) {
	dir := t.TempDir()
	srv := &Server{Root: FileRoot{Dir: dir}}
	from := netip.MustParseAddrPort("10.0.0.5:1234")

	resp, ok := srv.Handle(from, RRQ("missing", "octet"))
	require.True(t, ok)
	require.Equal(t, Error(ErrCodeFileNotFound, "No such file."), resp)
}

func TestServerUnsupportedOpcode(t *testing.T) {
	dir := t.TempDir()
	srv := &Server{Root: FileRoot{Dir: dir}}
	from := netip.MustParseAddrPort("10.0.0.5:1234")

	resp, ok := srv.Handle(from, WRQ("f", "octet"))
	require.True(t, ok)
	require.Equal(t, Error(ErrCodeUnsupportedOp, "Unsupported operation"), resp)
}

func TestServerMalformedPacketNoReply(t *testing.T) {
	dir := t.TempDir()
	srv := &Server{Root: FileRoot{Dir: dir}}
	from := netip.MustParseAddrPort("10.0.0.5:1234")

	_, ok := srv.Handle(from, []byte{0x01})
	require.False(t, ok)
}

func TestServerACKForUnknownTransfer(t *testing.T) {
	dir := t.TempDir()
	srv := &Server{Root: FileRoot{Dir: dir}}
	from := netip.MustParseAddrPort("10.0.0.5:1234")

	resp, ok := srv.Handle(from, ACK(0))
	require.True(t, ok)
	require.Equal(t, Error(ErrCodeUnsupportedOp, "Unsupported operation"), resp)
}

func TestServerNoTwoTransfersShareKey(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a", []byte("x"))
	writeTempFile(t, dir, "b", []byte("y"))

	srv := &Server{Root: FileRoot{Dir: dir}}
	from := netip.MustParseAddrPort("10.0.0.5:1234")

	_, ok := srv.Handle(from, RRQ("a", "octet"))
	require.True(t, ok)
	_, ok = srv.Handle(from, RRQ("b", "octet"))
	require.True(t, ok)

	require.Len(t, srv.transfers, 1)
}
