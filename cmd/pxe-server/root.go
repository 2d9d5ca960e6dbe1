package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Palkovsky/pxe-server/internal/config"
	"github.com/Palkovsky/pxe-server/internal/dhcpresponder"
	"github.com/Palkovsky/pxe-server/internal/metrics"
	"github.com/Palkovsky/pxe-server/internal/socketloop"
	"github.com/Palkovsky/pxe-server/internal/tftp"
)

func newRootCmd() *cobra.Command {
	cfg := config.Defaults()
	var configFile string

	cmd := &cobra.Command{
		Use:   "pxe-server x.x.x.x:pp",
		Short: "ProxyDHCP + TFTP server for PXE network boot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.BindAddr = args[0]
			if err := cfg.LoadFile(configFile); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cfg.BindFlags(cmd.Flags())
	cmd.Flags().StringVar(&configFile, "config", "", "optional YAML config file layered under the flags")
	return cmd
}

func run(cfg config.Config) error {
	log := newLogger(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, reg, log)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	host, _, err := net.SplitHostPort(cfg.BindAddr)
	if err != nil {
		return err
	}
	var serverAddr [4]byte
	if ip := net.ParseIP(host).To4(); ip != nil {
		copy(serverAddr[:], ip)
	}

	responderCfg := dhcpresponder.Config{
		ServerAddr:   serverAddr,
		ServerName:   cfg.ServerName,
		BootfileName: cfg.BootfileName,
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- socketloop.DHCPLoop(cfg.BindAddr, responderCfg, log.WithField("component", "dhcp"), m)
	}()
	go func() {
		tftpAddr := fmt.Sprintf("%s:%d", host, cfg.TFTPPort)
		errCh <- socketloop.TFTPLoop(tftpAddr, tftp.FileRoot{Dir: cfg.RootDir}, log.WithField("component", "tftp"), m)
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
		return nil
	}
}

func newLogger(level string) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logrus.NewEntry(logger)
}

func serveMetrics(addr string, reg *prometheus.Registry, log *logrus.Entry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.WithField("addr", addr).Info("metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Warn("metrics server stopped")
	}
}
