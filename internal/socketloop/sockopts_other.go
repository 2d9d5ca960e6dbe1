//go:build !linux && !darwin

package socketloop

import "net"

func setBroadcast(conn *net.UDPConn) error { return nil }

func setReuseAddr(conn *net.UDPConn) error { return nil }
