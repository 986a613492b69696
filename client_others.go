//go:build !linux
// +build !linux

package wifictl

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"runtime"
)

// errUnimplemented is returned by all operations on platforms without
// nl80211 support.
var errUnimplemented = fmt.Errorf("wifictl: not implemented on %s/%s",
	runtime.GOOS, runtime.GOARCH)

var _ osClient = &client{}

// A client is an unimplemented osClient.
type client struct{}

func newClient(_ *slog.Logger) (*client, error) {
	return nil, errUnimplemented
}

func (c *client) Close() error { return errUnimplemented }

func (c *client) Interfaces() ([]*Interface, error) { return nil, errUnimplemented }

func (c *client) InterfaceInfo(_ string) (*Interface, error) { return nil, errUnimplemented }

func (c *client) InterfaceInfoByIndex(_ int) (*Interface, error) { return nil, errUnimplemented }

func (c *client) Cached() map[string]*Interface { return nil }

func (c *client) SetTxPower(_ string, _ int) error { return errUnimplemented }

func (c *client) SetTxPowerByIndex(_, _ int) error { return errUnimplemented }

func (c *client) SetFrequency(_ string, _ int, _ string) error { return errUnimplemented }

func (c *client) SetFrequencyByIndex(_, _ int, _ string) error { return errUnimplemented }

func (c *client) SetStatus(_ string, _ bool) error { return errUnimplemented }

func (c *client) CreateInterface(_ string, _ InterfaceType, _ net.HardwareAddr, _ int) error {
	return errUnimplemented
}

func (c *client) DeleteInterface(_ string) error { return errUnimplemented }

func (c *client) DeleteInterfaceByIndex(_ int) error { return errUnimplemented }

func (c *client) AbortScan(_ string) error { return errUnimplemented }

func (c *client) CreateMonitorInterface(_ context.Context, _ string, _, _ int, _ string, _ net.HardwareAddr) error {
	return errUnimplemented
}

func (c *client) CreateAPInterface(_ context.Context, _ string, _, _ int, _ string, _ int, _ net.HardwareAddr) error {
	return errUnimplemented
}

func (c *client) Connect(_ *Interface, _ string) error { return errUnimplemented }

func (c *client) ConnectWPAPSK(_ *Interface, _, _ string) error { return errUnimplemented }

func (c *client) Disconnect(_ *Interface) error { return errUnimplemented }
