//go:build !unix && !windows

package broadcast

import "syscall"

// The runtime already enables SO_BROADCAST on datagram sockets where it exists.
func enableBroadcast(_, _ string, _ syscall.RawConn) error {
	return nil
}
