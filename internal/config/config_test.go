package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRequiresBindAddr(t *testing.T) {
	cfg := Defaults()
	cfg.RootDir = t.TempDir()
	require.Error(t, cfg.Validate())
}

func TestValidateRequiresRootDir(t *testing.T) {
	cfg := Defaults()
	cfg.BindAddr = "0.0.0.0:67"
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadBindAddr(t *testing.T) {
	cfg := Defaults()
	cfg.BindAddr = "not-an-address"
	cfg.RootDir = t.TempDir()
	require.Error(t, cfg.Validate())
}

func TestValidateOK(t *testing.T) {
	cfg := Defaults()
	cfg.BindAddr = "0.0.0.0:67"
	cfg.RootDir = t.TempDir()
	require.NoError(t, cfg.Validate())
}
