// Command pxe-server runs a ProxyDHCP responder and a read-only TFTP
// server for PXE network boot.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("pxe-server exited with error")
		os.Exit(1)
	}
}
