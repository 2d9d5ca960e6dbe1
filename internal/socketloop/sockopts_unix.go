//go:build linux || darwin

package socketloop

import (
	"net"

	"golang.org/x/sys/unix"
)

// setBroadcast enables SO_BROADCAST on conn so the DHCP responder can
// sendto 255.255.255.255 (a PXE client has no unicast-reachable address
// until its lease is bound, so every reply goes out as a broadcast).
func setBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	ctlErr := raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	})
	if ctlErr != nil {
		return ctlErr
	}
	return sockErr
}

// setReuseAddr enables SO_REUSEADDR so a restarted server can rebind the
// well-known DHCP/TFTP port immediately instead of hitting a TIME_WAIT
// conflict from the previous process's socket.
func setReuseAddr(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	ctlErr := raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if ctlErr != nil {
		return ctlErr
	}
	return sockErr
}
