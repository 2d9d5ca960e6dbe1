// Package config loads pxe-server's configuration from CLI flags and an
// optional file layered underneath them.
package config

import (
	"net"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the server's configuration surface: bind address, TFTP root,
// and the strings stamped into DHCP replies.
type Config struct {
	BindAddr     string // IPv4:port to bind the DHCP responder.
	TFTPPort     int
	RootDir      string // filesystem root for TFTP reads.
	BootfileName string
	ServerName   string
	MetricsAddr  string // optional debug HTTP listener address, empty disables it.
	LogLevel     string
}

// Defaults returns the conventional PXE boot values: port 69 for TFTP,
// "pxelinux.0" as the boot file, "PXEServer" as the DHCP server name.
func Defaults() Config {
	return Config{
		TFTPPort:     69,
		BootfileName: "pxelinux.0",
		ServerName:   "PXEServer",
		LogLevel:     "info",
	}
}

// BindFlags registers the flag set onto fs. BindAddr is taken as the one
// positional CLI argument, so it is not a flag here.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.RootDir, "root-dir", c.RootDir, "filesystem root for TFTP reads (required)")
	fs.IntVar(&c.TFTPPort, "tftp-port", c.TFTPPort, "UDP port the TFTP server listens on")
	fs.StringVar(&c.BootfileName, "bootfile-name", c.BootfileName, "boot file name placed in the DHCP filename field")
	fs.StringVar(&c.ServerName, "server-name", c.ServerName, "server name placed in the DHCP sname field")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "optional host:port to expose Prometheus metrics on")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "logrus level: debug, info, warn, error")
}

// LoadFile layers values from a YAML/ENV file (if path is non-empty) under
// whatever the flags already set, using viper so unset fields fall back to
// file values without overwriting explicit flags.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrap(err, "config: read file")
	}
	if c.RootDir == "" {
		c.RootDir = v.GetString("root_dir")
	}
	if c.BootfileName == Defaults().BootfileName {
		if s := v.GetString("bootfile_name"); s != "" {
			c.BootfileName = s
		}
	}
	if c.ServerName == Defaults().ServerName {
		if s := v.GetString("server_name"); s != "" {
			c.ServerName = s
		}
	}
	return nil
}

// Validate checks that the required fields are present and well-formed.
func (c Config) Validate() error {
	if c.BindAddr == "" {
		return errors.New("config: bind_addr is required")
	}
	if _, _, err := net.SplitHostPort(c.BindAddr); err != nil {
		return errors.Wrap(err, "config: invalid bind_addr")
	}
	if c.RootDir == "" {
		return errors.New("config: root_dir is required")
	}
	if info, err := os.Stat(c.RootDir); err != nil || !info.IsDir() {
		return errors.Errorf("config: root_dir %q is not a directory", c.RootDir)
	}
	return nil
}
