package socketloop

import (
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Palkovsky/pxe-server/internal/metrics"
	"github.com/Palkovsky/pxe-server/internal/tftp"
)

// tftpIdleTimeout is how long a transfer may go without any packet from its
// client before SweepIdle evicts it. RFC 1350 leaves transfer timeouts to the
// implementation; the state machine itself has none.
const tftpIdleTimeout = 30 * time.Second

// TFTPLoop binds addr and serves read-only TFTP requests forever. A
// background goroutine periodically evicts idle transfers.
func TFTPLoop(addr string, root tftp.FileRoot, log *logrus.Entry, m *metrics.Metrics) error {
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
	log.WithField("addr", addr).Info("TFTP server listening")

	srv := &tftp.Server{Root: root, Log: log, Metrics: m}
	go sweepLoop(srv, log)

	buf := make([]byte, 4096)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			log.WithError(err).Warn("tftp: read error")
			continue
		}
		resp, ok := srv.Handle(addrPort(from), buf[:n])
		if !ok {
			continue
		}
		if resp == nil {
			continue // transfer finished: no reply sent.
		}
		if _, err := conn.WriteToUDP(resp, from); err != nil {
			log.WithError(err).Warn("tftp: send failed")
		}
	}
}

func sweepLoop(srv *tftp.Server, log *logrus.Entry) {
	ticker := time.NewTicker(tftpIdleTimeout / 2)
	defer ticker.Stop()
	for range ticker.C {
		srv.SweepIdle(tftpIdleTimeout)
	}
}
