package dhcpresponder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Palkovsky/pxe-server/internal/dhcp"
)

func testConfig() Config {
	return Config{
		ServerAddr:   [4]byte{192, 168, 1, 103},
		ServerName:   "PXEServer",
		BootfileName: "pxelinux.0",
	}
}

func discoverRequest(t *testing.T) dhcp.Dgram {
	t.Helper()
	body := dhcp.NewBody()
	body.Op = dhcp.OpBootRequest
	body.HType = 1
	body.HLen = 6
	body.XID = 0xDEADBEEF
	copy(body.CHAddr[:6], []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff})

	b := dhcp.NewBuilder()
	b.SetBody(body)
	b.Option(dhcp.OptMessageType, []byte{dhcp.MsgDiscover})
	b.Option(dhcp.OptClassIdentifier, []byte("PXEClient"))
	b.Option(dhcp.OptClientMachineID, make([]byte, 16))
	b.End()
	d, ok := b.Build()
	require.True(t, ok)
	return d
}

func TestDiscoverProducesOffer(t *testing.T) {
	req := discoverRequest(t)
	resp, send := Respond(req, testConfig())
	require.True(t, send)

	require.Equal(t, dhcp.OpBootReply, resp.Body.Op)
	require.Equal(t, req.Body.XID, resp.Body.XID)
	require.True(t, strings.HasPrefix(string(resp.Body.SName[:]), "PXEServer"))
	require.True(t, strings.HasPrefix(string(resp.Body.Name[:]), "pxelinux.0"))

	msgType, ok := resp.Option(dhcp.OptMessageType)
	require.True(t, ok)
	require.Equal(t, []byte{dhcp.MsgOffer}, msgType)

	serverID, ok := resp.Option(dhcp.OptServerIdentifier)
	require.True(t, ok)
	require.Equal(t, []byte{192, 168, 1, 103}, serverID)

	classID, ok := resp.Option(dhcp.OptClassIdentifier)
	require.True(t, ok)
	require.Equal(t, "PXEClient", string(classID))

	vendor, ok := resp.Option(dhcp.OptVendorSpecific)
	require.True(t, ok)
	require.Equal(t, uint8(0x06), vendor[0])
	require.Equal(t, uint8(0x08), vendor[3])
	require.Equal(t, uint8(0xff), vendor[len(vendor)-1])
}

func TestRequestProducesAck(t *testing.T) {
	req := discoverRequest(t)
	req.Options[0] = dhcp.Option{Code: dhcp.OptMessageType, Length: 1, Value: []byte{dhcp.MsgRequest}}

	resp, send := Respond(req, testConfig())
	require.True(t, send)

	msgType, ok := resp.Option(dhcp.OptMessageType)
	require.True(t, ok)
	require.Equal(t, []byte{dhcp.MsgAck}, msgType)
}

func TestBootReplyDropped(t *testing.T) {
	req := discoverRequest(t)
	req.Body.Op = dhcp.OpBootReply

	_, send := Respond(req, testConfig())
	require.False(t, send)
}

func TestUnknownMessageTypeDropped(t *testing.T) {
	req := discoverRequest(t)
	req.Options[0] = dhcp.Option{Code: dhcp.OptMessageType, Length: 1, Value: []byte{dhcp.MsgInform}}

	_, send := Respond(req, testConfig())
	require.False(t, send)
}
