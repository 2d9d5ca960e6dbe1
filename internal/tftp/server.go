package tftp

import (
	"net/netip"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Palkovsky/pxe-server/internal/metrics"
)

// Server is a single-socket, multi-client TFTP server. All traffic arrives
// on one UDP endpoint; the source (IP, port) pair is the transfer key. The
// RFC 1350 recommendation that each transfer switch to a fresh TID is not
// honored: every reply for a transfer comes from the same bound port, so
// interoperability with strict clients is not guaranteed.
type Server struct {
	Root    FileRoot
	Log     *logrus.Entry
	Metrics *metrics.Metrics

	mu        sync.Mutex
	transfers map[netip.AddrPort]*transfer
	lastSeen  map[netip.AddrPort]time.Time
}

func (s *Server) init() {
	if s.transfers == nil {
		s.transfers = make(map[netip.AddrPort]*transfer)
		s.lastSeen = make(map[netip.AddrPort]time.Time)
	}
}

// Handle processes one inbound packet from the given remote endpoint and
// returns the bytes to send back. ok=false marks malformed input (fewer than
// 2 bytes); a nil response with ok=true marks the ACK that completes a
// transfer. Neither case is answered on the wire.
func (s *Server) Handle(from netip.AddrPort, pkt []byte) (response []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()

	if len(pkt) < 2 {
		s.logf(from, "malformed packet: fewer than 2 bytes")
		return nil, false
	}
	s.lastSeen[from] = time.Now()

	switch Opcode(pkt) {
	case OpRRQ:
		return s.handleRRQ(from, pkt), true
	case OpACK:
		return s.handleACK(from, pkt), true
	default:
		s.logf(from, "unsupported opcode %d", Opcode(pkt))
		return Error(ErrCodeUnsupportedOp, "Unsupported operation"), true
	}
}

func (s *Server) handleRRQ(from netip.AddrPort, pkt []byte) []byte {
	req, err := ParseRequest(pkt)
	if err != nil {
		s.logf(from, "bad RRQ: %v", err)
		return Error(ErrCodeNotDefined, "Malformed request")
	}

	f, err := s.Root.Open(req.Filename)
	if err != nil {
		s.logf(from, "open %q: %v", req.Filename, err)
		return Error(ErrCodeFileNotFound, "No such file.")
	}
	var size int64
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}

	if old, ok := s.transfers[from]; ok {
		old.file.Close()
	} else if s.Metrics != nil {
		s.Metrics.ActiveTransfers.Inc()
	}
	t := &transfer{blockSz: req.BlkSize, file: f, size: size}
	s.transfers[from] = t
	if s.Metrics != nil {
		s.Metrics.TransfersStarted.Inc()
	}

	var opts []NegotiatedOption
	if req.BlkSizeRequested {
		opts = append(opts, NegotiatedOption{Name: "blksize", Value: itoa(req.BlkSize)})
	}
	if req.TSizeRequested {
		opts = append(opts, NegotiatedOption{Name: "tsize", Value: itoa64(size)})
	}
	return OptionAck(opts)
}

func (s *Server) handleACK(from netip.AddrPort, pkt []byte) []byte {
	if len(pkt) < 4 {
		s.logf(from, "malformed ACK: fewer than 4 bytes")
		return Error(ErrCodeNotDefined, "Malformed ACK")
	}
	t, ok := s.transfers[from]
	if !ok {
		s.logf(from, "ACK for unknown transfer")
		return Error(ErrCodeUnsupportedOp, "Unsupported operation")
	}

	if t.done {
		// The client ACKed the final short block: the transfer is
		// complete. Remove it and send no reply.
		s.removeTransfer(from)
		return nil
	}

	block, err := t.nextBlock()
	if err != nil {
		s.logf(from, "read error: %v", err)
		s.removeTransfer(from)
		if s.Metrics != nil {
			s.Metrics.TransfersFailed.Inc()
		}
		return Error(ErrCodeAccessViolation, "Unable to read next block.")
	}
	if t.done && s.Metrics != nil {
		s.Metrics.TransfersCompleted.Inc()
	}
	return Data(t.blockCnt, block)
}

func (s *Server) removeTransfer(from netip.AddrPort) {
	if t, ok := s.transfers[from]; ok {
		t.file.Close()
		delete(s.transfers, from)
		delete(s.lastSeen, from)
		if s.Metrics != nil {
			s.Metrics.ActiveTransfers.Dec()
		}
	}
}

// SweepIdle removes transfers that have not been touched in longer than
// maxIdle, closing their file handles. The state machine itself enforces no
// per-transfer timeout; a caller runs this periodically to evict stalled
// clients.
func (s *Server) SweepIdle(maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	now := time.Now()
	for addr, seen := range s.lastSeen {
		if now.Sub(seen) > maxIdle {
			s.logf(addr, "evicting idle transfer")
			s.removeTransfer(addr)
		}
	}
}

func (s *Server) logf(from netip.AddrPort, format string, args ...interface{}) {
	if s.Log == nil {
		return
	}
	s.Log.WithField("remote", from.String()).Debugf(format, args...)
}
