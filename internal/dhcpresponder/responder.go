// Package dhcpresponder implements the stateless DISCOVER/REQUEST → OFFER/ACK
// mapping for ProxyDHCP PXE boot. It carries no lease table and no XID
// memory; every call is a pure function of the inbound datagram and the
// server's own configuration.
package dhcpresponder

import (
	"github.com/Palkovsky/pxe-server/internal/dhcp"
	"github.com/Palkovsky/pxe-server/internal/pxe"
)

// Config holds the values the responder stamps into every reply.
type Config struct {
	ServerAddr   [4]byte
	ServerName   string // e.g. "PXEServer", placed in Body.SName.
	BootfileName string // e.g. "pxelinux.0", placed in Body.Name.
}

// Respond maps an inbound request into a response datagram. The second
// return value reports whether a response should be sent at all.
//
// Inputs with Op != OpBootRequest are dropped (a server never replies to
// its own broadcast replies). Dispatch is on DHCP option 53:
//
//   - DISCOVER produces an OFFER.
//   - REQUEST produces an ACK mirroring the OFFER, completing the PXE
//     DISCOVER/OFFER/REQUEST/ACK handshake.
//   - anything else produces no response.
func Respond(req dhcp.Dgram, cfg Config) (dhcp.Dgram, bool) {
	if req.Body.Op != dhcp.OpBootRequest {
		return dhcp.Dgram{}, false
	}
	msgType, ok := req.Option(dhcp.OptMessageType)
	if !ok || len(msgType) != 1 {
		return dhcp.Dgram{}, false
	}
	switch msgType[0] {
	case dhcp.MsgDiscover:
		return offer(req, cfg), true
	case dhcp.MsgRequest:
		return ack(req, cfg), true
	default:
		return dhcp.Dgram{}, false
	}
}

func offer(req dhcp.Dgram, cfg Config) dhcp.Dgram {
	return build(req, cfg, dhcp.MsgOffer)
}

func ack(req dhcp.Dgram, cfg Config) dhcp.Dgram {
	return build(req, cfg, dhcp.MsgAck)
}

// build assembles an OFFER or ACK from the incoming request body: sets
// Op=BOOT_REPLY, stamps the server/bootfile names, attaches a PXE
// vendor-options block, and assembles the DHCP option list in the order the
// wire format expects (message type, server id, class id, vendor, end).
func build(req dhcp.Dgram, cfg Config, msgType uint8) dhcp.Dgram {
	body := req.Body
	body.Op = dhcp.OpBootReply
	dhcp.SetString(body.SName[:], cfg.ServerName)
	dhcp.SetString(body.Name[:], cfg.BootfileName)
	if msgType == dhcp.MsgAck {
		body.YIAddr = body.CIAddr
		body.SIAddr = cfg.ServerAddr
	}

	pxeBlock := pxe.NewBuilder().
		Start(false).
		BootServers([][4]byte{cfg.ServerAddr}).
		End().
		Build()

	b := dhcp.NewBuilder()
	b.SetBody(body)
	b.Option(dhcp.OptMessageType, []byte{msgType})
	b.Option(dhcp.OptServerIdentifier, cfg.ServerAddr[:])
	b.Option(dhcp.OptClassIdentifier, []byte("PXEClient"))
	b.Option(dhcp.OptVendorSpecific, pxeBlock)
	b.End()
	out, _ := b.Build() // body always set above; Build cannot fail here.
	return out
}
