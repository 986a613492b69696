// Package wifictl configures IEEE 802.11 wireless network interfaces on
// Linux by speaking generic netlink (nl80211) and route netlink directly to
// the kernel. It is the control plane used to prepare monitor and AP mode
// interfaces before channel-state measurement can start.
package wifictl

import (
	"context"
	"log/slog"
	"net"
)

// A Client controls WiFi network interfaces using operating system-specific
// operations.
type Client struct {
	c osClient
}

// An osClient is the operating system-specific half of a Client, swapped for
// a stub on platforms without nl80211.
type osClient interface {
	Close() error
	Interfaces() ([]*Interface, error)
	InterfaceInfo(name string) (*Interface, error)
	InterfaceInfoByIndex(index int) (*Interface, error)
	Cached() map[string]*Interface
	SetTxPower(name string, dbm int) error
	SetTxPowerByIndex(index, dbm int) error
	SetFrequency(name string, freq int, bandwidth string) error
	SetFrequencyByIndex(index, freq int, bandwidth string) error
	SetStatus(name string, up bool) error
	CreateInterface(name string, typ InterfaceType, addr net.HardwareAddr, phy int) error
	DeleteInterface(name string) error
	DeleteInterfaceByIndex(index int) error
	AbortScan(name string) error
	CreateMonitorInterface(ctx context.Context, name string, phy, freq int, bandwidth string, addr net.HardwareAddr) error
	CreateAPInterface(ctx context.Context, name string, phy, freq int, bandwidth string, txPower int, addr net.HardwareAddr) error
	Connect(ifi *Interface, ssid string) error
	ConnectWPAPSK(ifi *Interface, ssid, psk string) error
	Disconnect(ifi *Interface) error
}

// New creates a new Client. Failures and kernel diagnostics are reported to
// log; if log is nil, slog.Default is used.
func New(log *slog.Logger) (*Client, error) {
	c, err := newClient(log)
	if err != nil {
		return nil, err
	}

	return &Client{c: c}, nil
}

// Close releases the netlink sockets held by the Client and clears its
// interface cache.
func (c *Client) Close() error { return c.c.Close() }

// Interfaces requests that nl80211 return a list of all WiFi interfaces
// present on this system, refreshing the Client's interface cache.
func (c *Client) Interfaces() ([]*Interface, error) { return c.c.Interfaces() }

// InterfaceInfo queries the current configuration of the named interface.
func (c *Client) InterfaceInfo(name string) (*Interface, error) { return c.c.InterfaceInfo(name) }

// InterfaceInfoByIndex queries the current configuration of the interface
// with the given device index.
func (c *Client) InterfaceInfoByIndex(index int) (*Interface, error) {
	return c.c.InterfaceInfoByIndex(index)
}

// Cached returns a copy of the Client's interface cache, keyed by interface
// name. The cache reflects the most recent query results and must be
// refreshed by re-querying after interface churn.
func (c *Client) Cached() map[string]*Interface { return c.c.Cached() }

// SetTxPower fixes the transmit power of the named interface to dbm dBm,
// then re-queries the interface to verify the kernel honored the request.
func (c *Client) SetTxPower(name string, dbm int) error { return c.c.SetTxPower(name, dbm) }

// SetTxPowerByIndex is like SetTxPower, addressing the interface by device
// index.
func (c *Client) SetTxPowerByIndex(index, dbm int) error { return c.c.SetTxPowerByIndex(index, dbm) }

// SetFrequency tunes the named interface to the control frequency freq (in
// MHz) with the given bandwidth label (see GetChanMode), then re-queries the
// interface to verify the kernel honored the request.
func (c *Client) SetFrequency(name string, freq int, bandwidth string) error {
	return c.c.SetFrequency(name, freq, bandwidth)
}

// SetFrequencyByIndex is like SetFrequency, addressing the interface by
// device index.
func (c *Client) SetFrequencyByIndex(index, freq int, bandwidth string) error {
	return c.c.SetFrequencyByIndex(index, freq, bandwidth)
}

// SetStatus brings the named interface administratively up or down using
// route netlink.
func (c *Client) SetStatus(name string, up bool) error { return c.c.SetStatus(name, up) }

// CreateInterface creates a new virtual interface of the given type on the
// physical radio phy. Success means the new interface is queryable, not
// merely that the kernel acknowledged the command.
func (c *Client) CreateInterface(name string, typ InterfaceType, addr net.HardwareAddr, phy int) error {
	return c.c.CreateInterface(name, typ, addr, phy)
}

// DeleteInterface deletes the named virtual interface.
func (c *Client) DeleteInterface(name string) error { return c.c.DeleteInterface(name) }

// DeleteInterfaceByIndex deletes the virtual interface with the given device
// index.
func (c *Client) DeleteInterfaceByIndex(index int) error { return c.c.DeleteInterfaceByIndex(index) }

// AbortScan requests that any scan running on the named interface be
// aborted.
func (c *Client) AbortScan(name string) error { return c.c.AbortScan(name) }

// CreateMonitorInterface creates a monitor mode interface on the physical
// radio phy, brings it up and tunes it. If tuning fails, the software
// radio-kill switches are unblocked and tuning is retried with a fixed
// backoff until it succeeds or ctx is cancelled.
func (c *Client) CreateMonitorInterface(ctx context.Context, name string, phy, freq int, bandwidth string, addr net.HardwareAddr) error {
	return c.c.CreateMonitorInterface(ctx, name, phy, freq, bandwidth, addr)
}

// CreateAPInterface creates an AP mode interface on the physical radio phy,
// brings it up, tunes it with the same rfkill recovery as
// CreateMonitorInterface, and finally attempts to fix its transmit power.
func (c *Client) CreateAPInterface(ctx context.Context, name string, phy, freq int, bandwidth string, txPower int, addr net.HardwareAddr) error {
	return c.c.CreateAPInterface(ctx, name, phy, freq, bandwidth, txPower, addr)
}

// Connect starts connecting the interface to the specified ssid.
func (c *Client) Connect(ifi *Interface, ssid string) error { return c.c.Connect(ifi, ssid) }

// ConnectWPAPSK starts connecting the interface to the specified ssid using
// WPA2-PSK.
func (c *Client) ConnectWPAPSK(ifi *Interface, ssid, psk string) error {
	return c.c.ConnectWPAPSK(ifi, ssid, psk)
}

// Disconnect disconnects the interface.
func (c *Client) Disconnect(ifi *Interface) error { return c.c.Disconnect(ifi) }
