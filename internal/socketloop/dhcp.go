// Package socketloop runs the DHCP and TFTP services as two independent
// net.UDPConn-driven loops. Each loop is single-threaded cooperative: one
// goroutine serialises all packet handling for its service, and the socket
// has a single owner. The TFTP transfer table is also touched by the idle
// sweep goroutine, so tftp.Server guards it with a mutex.
package socketloop

import (
	"net"
	"net/netip"

	"github.com/sirupsen/logrus"

	"github.com/Palkovsky/pxe-server/internal/dhcp"
	"github.com/Palkovsky/pxe-server/internal/dhcpresponder"
	"github.com/Palkovsky/pxe-server/internal/metrics"
)

// broadcastAddr is where DHCP replies are sent: the client has no bound
// address yet, so every reply goes out as a link broadcast to the well
// known client port 68.
var broadcastAddr = &net.UDPAddr{IP: net.IPv4bcast, Port: 68}

// DHCPLoop binds addr and serves ProxyDHCP DISCOVER/REQUEST forever; the
// connection is never handed to the caller, so the loop ends only with the
// process. Parse failures and non-responses simply resume receiving: no error ever
// crosses the service boundary except bind failure, which the caller
// observes via the returned error.
func DHCPLoop(addr string, cfg dhcpresponder.Config, log *logrus.Entry, m *metrics.Metrics) error {
	udpAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp4", udpAddr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := setReuseAddr(conn); err != nil {
		log.WithError(err).Warn("could not set SO_REUSEADDR")
	}
	if err := setBroadcast(conn); err != nil {
		log.WithError(err).Warn("could not set SO_BROADCAST")
	}
	log.WithField("addr", addr).Info("DHCP responder listening")

	buf := make([]byte, 4096)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			log.WithError(err).Warn("dhcp: read error")
			continue
		}
		req, err := dhcp.FromBytes(buf[:n])
		if err != nil {
			log.WithError(err).Debug("dhcp: unparseable datagram")
			continue
		}
		req = req.SwapEndianess()
		handleOne(conn, from, req, cfg, log, m)
	}
}

func handleOne(conn *net.UDPConn, from *net.UDPAddr, req dhcp.Dgram, cfg dhcpresponder.Config, log *logrus.Entry, m *metrics.Metrics) {
	resp, ok := dhcpresponder.Respond(req, cfg)
	if !ok {
		if m != nil {
			m.RequestsDropped.Inc()
		}
		log.WithField("from", from.String()).Debug("dhcp: no response")
		return
	}
	resp = resp.SwapEndianess()
	if _, err := conn.WriteToUDP(resp.Bytes(), broadcastAddr); err != nil {
		log.WithError(err).Warn("dhcp: send failed")
		return
	}
	if m != nil {
		msgType, _ := req.Option(dhcp.OptMessageType)
		if len(msgType) == 1 && msgType[0] == dhcp.MsgRequest {
			m.AcksSent.Inc()
		} else {
			m.OffersSent.Inc()
		}
	}
	log.WithField("from", from.String()).Info("dhcp: response sent")
}

// addrPort converts a *net.UDPAddr to netip.AddrPort for use as a TFTP
// transfer-table key.
func addrPort(a *net.UDPAddr) netip.AddrPort {
	ip, _ := netip.AddrFromSlice(a.IP.To4())
	return netip.AddrPortFrom(ip, uint16(a.Port))
}
