//go:build linux
// +build linux

package wifictl

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/jsimonetti/rtnetlink"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/wifictl/wifictl/internal/rfkill"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sys/unix"
)

var (
	// ErrNotSupported is returned when the device does not support a
	// requested feature.
	ErrNotSupported = errors.New("not supported")

	// ErrVerifyTxPower is returned when a transmit power change was
	// acknowledged by the kernel but a re-query shows it was not applied.
	ErrVerifyTxPower = errors.New("transmit power not applied")

	// ErrVerifyFrequency is returned when a frequency change was
	// acknowledged by the kernel but a re-query shows it was not applied.
	ErrVerifyFrequency = errors.New("frequency not applied")
)

var _ osClient = &client{}

const (
	// Send and receive buffer size for both netlink sockets.
	sockBufSize = 8192

	// settleDelay is the fixed pause between configuration steps and
	// between rfkill recovery retries.
	settleDelay = 250 * time.Millisecond
)

// A client is the Linux implementation of osClient. It owns one generic
// netlink socket bound to the nl80211 family and one route netlink socket,
// both held for the client's lifetime, plus a cache of interface records
// keyed by name.
//
// All operations are serialized by mu: the request/response correlation on
// the shared sockets relies on a single command being in flight at a time.
type client struct {
	mu sync.Mutex

	c             *genetlink.Conn
	familyID      uint16
	familyVersion uint8

	rt    *rtnetlink.Conn
	links linkService

	// ifindex resolves an interface name through the kernel's name to
	// index table. Swapped in tests.
	ifindex func(name string) (int, error)

	log *slog.Logger

	directory map[string]*Interface
}

// newClient dials the generic netlink and route netlink sockets and
// verifies that nl80211 is available. Socket setup is all-or-nothing: on
// any failure, sockets opened so far are closed before returning.
func newClient(log *slog.Logger) (*client, error) {
	c, err := genetlink.Dial(nil)
	if err != nil {
		return nil, err
	}

	// Extended acknowledgements carry the kernel's diagnostic text on
	// ERROR frames. Strict checking is best effort; older kernels do not
	// support it.
	for _, o := range []netlink.ConnOption{
		netlink.ExtendedAcknowledge,
		netlink.GetStrictCheck,
	} {
		_ = c.SetOption(o, true)
	}

	_ = c.SetReadBuffer(sockBufSize)
	_ = c.SetWriteBuffer(sockBufSize)

	rt, err := rtnetlink.Dial(nil)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("dialing route netlink: %w", err)
	}

	// The route socket carries extended acknowledgements too. Buffer sizes
	// are not configurable through its API.
	_ = rt.SetOption(netlink.ExtendedAcknowledge, true)

	return initClient(c, rt, log)
}

// initClient resolves the nl80211 family on c and assembles a client. It is
// split from newClient so tests can supply fake connections.
func initClient(c *genetlink.Conn, rt *rtnetlink.Conn, log *slog.Logger) (*client, error) {
	family, err := c.GetFamily(unix.NL80211_GENL_NAME)
	if err != nil {
		// Close the sockets on error to avoid leaking file descriptors.
		_ = c.Close()
		if rt != nil {
			_ = rt.Close()
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("nl80211 family not found, wireless subsystem absent: %w", err)
		}
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}

	cl := &client{
		c:             c,
		familyID:      family.ID,
		familyVersion: family.Version,
		rt:            rt,
		ifindex:       netIfindex,
		log:           log,
		directory:     make(map[string]*Interface),
	}
	if rt != nil {
		cl.links = rt.Link
	}

	return cl, nil
}

func netIfindex(name string) (int, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return 0, err
	}
	return ifi.Index, nil
}

// Close closes both netlink sockets and clears the interface cache.
func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.directory = make(map[string]*Interface)

	err := c.c.Close()
	if c.rt != nil {
		err = errors.Join(err, c.rt.Close())
	}
	return err
}

// Interfaces asks nl80211 to dump all WiFi interfaces, harvests each one's
// transmit power with a follow-up query, and upserts the results into the
// interface cache.
func (c *client) Interfaces() ([]*Interface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var builders []*interfaceBuilder
	err := c.execute(command{
		id:      unix.NL80211_CMD_GET_INTERFACE,
		flags:   netlink.Dump,
		onReply: collectBuilders(&builders),
	})
	if err != nil {
		return nil, err
	}

	ifis := make([]*Interface, 0, len(builders))
	for _, b := range builders {
		// Every collected builder has its device index set.
		if err := c.fetchTxPower(b); err != nil {
			c.log.Warn("querying transmit power", "index", *b.index, "err", err)
		}

		ifi := b.freeze()
		c.directory[ifi.Name] = ifi
		ifis = append(ifis, ifi)
	}

	return ifis, nil
}

// InterfaceInfo queries the current configuration of the named interface.
func (c *client) InterfaceInfo(name string) (*Interface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.ifindex(name)
	if err != nil {
		return nil, fmt.Errorf("resolving interface %q: %w", name, err)
	}
	return c.infoByIndex(index)
}

// InterfaceInfoByIndex queries the current configuration of the interface
// with the given device index.
func (c *client) InterfaceInfoByIndex(index int) (*Interface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.infoByIndex(index)
}

// infoByIndex issues a single non-dump interface query scoped by device
// index, follows up for transmit power, and upserts the frozen record into
// the cache.
func (c *client) infoByIndex(index int) (*Interface, error) {
	var builders []*interfaceBuilder
	err := c.execute(command{
		id:      unix.NL80211_CMD_GET_INTERFACE,
		idBy:    byNetDev,
		device:  uint64(index),
		onReply: collectBuilders(&builders),
	})
	if err != nil {
		return nil, err
	}

	if len(builders) == 0 {
		return nil, fmt.Errorf("interface index %d: %w", index, os.ErrNotExist)
	}
	if len(builders) > 1 {
		// A single index should never match more than once.
		c.log.Warn("multiple interfaces reported for one index, using the first",
			"index", index)
	}

	b := builders[0]
	if err := c.fetchTxPower(b); err != nil {
		c.log.Warn("querying transmit power", "index", index, "err", err)
	}

	ifi := b.freeze()
	c.directory[ifi.Name] = ifi
	return ifi, nil
}

// Cached returns a copy of the interface cache. The records are copied as
// well, so the caller cannot mutate cached state through them.
func (c *client) Cached() map[string]*Interface {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]*Interface, len(c.directory))
	for name, ifi := range c.directory {
		cp := *ifi
		cp.HardwareAddr = append(net.HardwareAddr(nil), ifi.HardwareAddr...)
		out[name] = &cp
	}
	return out
}

// collectBuilders returns a reply handler that parses each payload frame
// into an interface builder and appends it to dst. Frames without a device
// index attribute describe non-netdev wireless devices and are skipped.
func collectBuilders(dst *[]*interfaceBuilder) func(m genetlink.Message) error {
	return func(m genetlink.Message) error {
		b, err := parseInterfaceBuilder(m.Data)
		if err != nil {
			return err
		}
		if b != nil {
			*dst = append(*dst, b)
		}
		return nil
	}
}

// parseInterfaceBuilder decodes nl80211 interface attributes into a partial
// interface record. It returns nil if the reply carries no device index.
func parseInterfaceBuilder(data []byte) (*interfaceBuilder, error) {
	attrs, err := netlink.UnmarshalAttributes(data)
	if err != nil {
		return nil, err
	}

	var b interfaceBuilder
	for _, a := range attrs {
		switch a.Type {
		case unix.NL80211_ATTR_IFINDEX:
			v := int(nlenc.Uint32(a.Data))
			b.index = &v
		case unix.NL80211_ATTR_IFNAME:
			v := nlenc.String(a.Data)
			b.name = &v
		case unix.NL80211_ATTR_IFTYPE:
			v := InterfaceType(nlenc.Uint32(a.Data))
			b.typ = &v
		case unix.NL80211_ATTR_WIPHY:
			v := int(nlenc.Uint32(a.Data))
			b.phy = &v
		case unix.NL80211_ATTR_WDEV:
			v := int(nlenc.Uint64(a.Data))
			b.device = &v
		case unix.NL80211_ATTR_MAC:
			b.hardwareAddr = net.HardwareAddr(a.Data)
		case unix.NL80211_ATTR_WIPHY_FREQ:
			v := int(nlenc.Uint32(a.Data))
			b.frequency = &v
		case unix.NL80211_ATTR_WIPHY_TX_POWER_LEVEL:
			// Some drivers report power already on the interface dump.
			v := int(nlenc.Int32(a.Data)) / 100
			b.txPower = &v
		}
	}

	if b.index == nil {
		return nil, nil
	}
	return &b, nil
}

// fetchTxPower dumps the wiphy scoped by b's device index and merges the
// first reported transmit power level into b. The kernel does not reliably
// return power on the interface query itself.
func (c *client) fetchTxPower(b *interfaceBuilder) error {
	return c.execute(command{
		id:     unix.NL80211_CMD_GET_WIPHY,
		idBy:   byNetDev,
		device: uint64(*b.index),
		flags:  netlink.Dump,
		onReply: func(m genetlink.Message) error {
			attrs, err := netlink.UnmarshalAttributes(m.Data)
			if err != nil {
				return err
			}

			for _, a := range attrs {
				if a.Type != unix.NL80211_ATTR_WIPHY_TX_POWER_LEVEL {
					continue
				}
				if b.txPower == nil {
					// mBm to dBm.
					v := int(nlenc.Int32(a.Data)) / 100
					b.txPower = &v
				}
				break
			}
			return nil
		},
	})
}

// SetTxPower fixes the transmit power of the named interface to dbm dBm.
func (c *client) SetTxPower(name string, dbm int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.ifindex(name)
	if err != nil {
		return fmt.Errorf("resolving interface %q: %w", name, err)
	}
	return c.setTxPower(index, dbm)
}

// SetTxPowerByIndex is like SetTxPower, addressing the interface by device
// index.
func (c *client) SetTxPowerByIndex(index, dbm int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.setTxPower(index, dbm)
}

func (c *client) setTxPower(index, dbm int) error {
	err := c.execute(command{
		id:     unix.NL80211_CMD_SET_WIPHY,
		idBy:   byNetDev,
		device: uint64(index),
		flags:  netlink.Acknowledge,
		onSend: func(ae *netlink.AttributeEncoder) error {
			ae.Int32(unix.NL80211_ATTR_WIPHY_TX_POWER_SETTING, unix.NL80211_TX_POWER_FIXED)
			ae.Int32(unix.NL80211_ATTR_WIPHY_TX_POWER_LEVEL, int32(dbm*100))
			return nil
		},
	})
	if err != nil {
		return err
	}

	// An acknowledged set does not guarantee the hardware honored the
	// requested power. Read it back and compare.
	ifi, err := c.infoByIndex(index)
	if err != nil {
		return err
	}
	if ifi.TxPower != dbm {
		return fmt.Errorf("interface %q reports %d dBm after setting %d dBm: %w",
			ifi.Name, ifi.TxPower, dbm, ErrVerifyTxPower)
	}
	return nil
}

// SetFrequency tunes the named interface to the control frequency freq in
// MHz with the given bandwidth label.
func (c *client) SetFrequency(name string, freq int, bandwidth string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.ifindex(name)
	if err != nil {
		return fmt.Errorf("resolving interface %q: %w", name, err)
	}
	return c.setFrequency(index, freq, bandwidth)
}

// SetFrequencyByIndex is like SetFrequency, addressing the interface by
// device index.
func (c *client) SetFrequencyByIndex(index, freq int, bandwidth string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.setFrequency(index, freq, bandwidth)
}

func (c *client) setFrequency(index, freq int, bandwidth string) error {
	err := c.execute(command{
		id:     unix.NL80211_CMD_SET_WIPHY,
		idBy:   byNetDev,
		device: uint64(index),
		flags:  netlink.Acknowledge,
		onSend: func(ae *netlink.AttributeEncoder) error {
			putFrequencyAttrs(ae, freq, bandwidth)
			return nil
		},
	})
	if err != nil {
		return err
	}

	// Same read-after-write discipline as transmit power.
	ifi, err := c.infoByIndex(index)
	if err != nil {
		return err
	}
	if ifi.Frequency != freq {
		return fmt.Errorf("interface %q reports %d MHz after setting %d MHz: %w",
			ifi.Name, ifi.Frequency, freq, ErrVerifyFrequency)
	}
	return nil
}

// putFrequencyAttrs appends the channel configuration attributes for tuning
// to the control frequency freq with the given bandwidth label: control
// frequency, frequency offset, channel width, the legacy channel type for
// width families that still require one, and the first center frequency.
func putFrequencyAttrs(ae *netlink.AttributeEncoder, freq int, bandwidth string) {
	mode := GetChanMode(bandwidth)
	cf1 := CenterFreq1(mode, freq)

	ae.Uint32(unix.NL80211_ATTR_WIPHY_FREQ, uint32(freq))
	ae.Uint32(unix.NL80211_ATTR_WIPHY_FREQ_OFFSET, 0)
	ae.Uint32(unix.NL80211_ATTR_CHANNEL_WIDTH, uint32(mode.Width))

	switch mode.LegacyChanType {
	case chanNoHT:
		ae.Uint32(unix.NL80211_ATTR_WIPHY_CHANNEL_TYPE, unix.NL80211_CHAN_NO_HT)
	case chanHT20:
		ae.Uint32(unix.NL80211_ATTR_WIPHY_CHANNEL_TYPE, unix.NL80211_CHAN_HT20)
	case chanHT40Plus, chanHT40Minus:
		// The secondary channel sits on whichever side of the center the
		// control channel is not.
		if freq > cf1 {
			ae.Uint32(unix.NL80211_ATTR_WIPHY_CHANNEL_TYPE, unix.NL80211_CHAN_HT40MINUS)
		} else {
			ae.Uint32(unix.NL80211_ATTR_WIPHY_CHANNEL_TYPE, unix.NL80211_CHAN_HT40PLUS)
		}
	}

	if cf1 != 0 {
		ae.Uint32(unix.NL80211_ATTR_CENTER_FREQ1, uint32(cf1))
	}
}

// CreateInterface creates a new virtual interface of the given type on the
// physical radio phy. The kernel's acknowledgement alone does not prove the
// device exists, so success is defined by a subsequent query for the name.
func (c *client) CreateInterface(name string, typ InterfaceType, addr net.HardwareAddr, phy int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.createInterface(name, typ, addr, phy)
}

func (c *client) createInterface(name string, typ InterfaceType, addr net.HardwareAddr, phy int) error {
	err := c.execute(command{
		id:     unix.NL80211_CMD_NEW_INTERFACE,
		idBy:   byPHY,
		device: uint64(phy),
		flags:  netlink.Acknowledge,
		onSend: func(ae *netlink.AttributeEncoder) error {
			if len(addr) != 6 {
				return fmt.Errorf("invalid hardware address %q", addr)
			}
			ae.String(unix.NL80211_ATTR_IFNAME, name)
			ae.Uint32(unix.NL80211_ATTR_IFTYPE, uint32(typ))
			ae.Bytes(unix.NL80211_ATTR_MAC, addr)
			return nil
		},
	})
	if err != nil {
		return err
	}

	index, err := c.ifindex(name)
	if err != nil {
		return fmt.Errorf("interface %q not present after create: %w", name, err)
	}
	if _, err := c.infoByIndex(index); err != nil {
		return fmt.Errorf("interface %q not present after create: %w", name, err)
	}
	return nil
}

// DeleteInterface deletes the named virtual interface and drops it from the
// interface cache.
func (c *client) DeleteInterface(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.ifindex(name)
	if err != nil {
		return fmt.Errorf("resolving interface %q: %w", name, err)
	}
	return c.deleteByIndex(index)
}

// DeleteInterfaceByIndex deletes the virtual interface with the given
// device index.
func (c *client) DeleteInterfaceByIndex(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.deleteByIndex(index)
}

func (c *client) deleteByIndex(index int) error {
	err := c.execute(command{
		id:     unix.NL80211_CMD_DEL_INTERFACE,
		idBy:   byNetDev,
		device: uint64(index),
		flags:  netlink.Acknowledge,
	})
	if err != nil {
		return err
	}

	for name, ifi := range c.directory {
		if ifi.Index == index {
			delete(c.directory, name)
		}
	}
	return nil
}

// AbortScan requests that any scan running on the named interface be
// aborted.
func (c *client) AbortScan(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.ifindex(name)
	if err != nil {
		return fmt.Errorf("resolving interface %q: %w", name, err)
	}

	return c.execute(command{
		id:     unix.NL80211_CMD_ABORT_SCAN,
		idBy:   byNetDev,
		device: uint64(index),
		flags:  netlink.Acknowledge,
	})
}

// CreateMonitorInterface creates a monitor mode interface, brings it up and
// tunes it. Tuning commonly fails while the radio is still soft-blocked by
// rfkill; that condition is transient and externally recoverable, so the
// software kill switches are unblocked and tuning is retried with a fixed
// backoff until it succeeds or ctx is cancelled.
func (c *client) CreateMonitorInterface(ctx context.Context, name string, phy, freq int, bandwidth string, addr net.HardwareAddr) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.bringUpInterface(ctx, name, InterfaceTypeMonitor, phy, freq, bandwidth, addr)
}

// CreateAPInterface creates an AP mode interface, brings it up and tunes it
// with the same rfkill recovery as CreateMonitorInterface, then attempts to
// fix its transmit power.
func (c *client) CreateAPInterface(ctx context.Context, name string, phy, freq int, bandwidth string, txPower int, addr net.HardwareAddr) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.bringUpInterface(ctx, name, InterfaceTypeAP, phy, freq, bandwidth, addr); err != nil {
		return err
	}

	// TODO: fail hard once tx power setting works reliably on AP
	// interfaces; some drivers reject it while beaconing is not running.
	index, err := c.ifindex(name)
	if err == nil {
		err = c.setTxPower(index, txPower)
	}
	if err != nil {
		c.log.Warn("setting transmit power on AP interface", "interface", name, "err", err)
	}
	return nil
}

func (c *client) bringUpInterface(ctx context.Context, name string, typ InterfaceType, phy, freq int, bandwidth string, addr net.HardwareAddr) error {
	if err := c.createInterface(name, typ, addr, phy); err != nil {
		return fmt.Errorf("creating %s interface %q: %w", typ, name, err)
	}

	if err := c.setStatus(name, true); err != nil {
		return fmt.Errorf("bringing %q up: %w", name, err)
	}

	if err := sleepCtx(ctx, settleDelay); err != nil {
		return err
	}

	index, err := c.ifindex(name)
	if err != nil {
		return fmt.Errorf("resolving interface %q: %w", name, err)
	}

	for {
		err := c.setFrequency(index, freq, bandwidth)
		if err == nil {
			return nil
		}
		c.log.Error("failed to set frequency, unblocking rfkill and retrying",
			"interface", name, "freq", freq, "err", err)

		if uerr := rfkill.UnblockAll(); uerr != nil {
			c.log.Warn("rfkill unblock", "err", uerr)
		}
		if err := sleepCtx(ctx, settleDelay); err != nil {
			return err
		}
	}
}

// sleepCtx pauses for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Connect starts connecting the interface to the specified ssid.
func (c *client) Connect(ifi *Interface, ssid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.execute(command{
		id:     unix.NL80211_CMD_CONNECT,
		idBy:   byNetDev,
		device: uint64(ifi.Index),
		flags:  netlink.Acknowledge,
		onSend: func(ae *netlink.AttributeEncoder) error {
			ae.Bytes(unix.NL80211_ATTR_SSID, []byte(ssid))
			ae.Uint32(unix.NL80211_ATTR_AUTH_TYPE, unix.NL80211_AUTHTYPE_OPEN_SYSTEM)
			return nil
		},
	})
}

// Disconnect disconnects the interface.
func (c *client) Disconnect(ifi *Interface) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.execute(command{
		id:     unix.NL80211_CMD_DISCONNECT,
		idBy:   byNetDev,
		device: uint64(ifi.Index),
		flags:  netlink.Acknowledge,
	})
}

// ConnectWPAPSK starts connecting the interface to the specified ssid using
// WPA2-PSK. The device must support the station 4-way handshake offload.
func (c *client) ConnectWPAPSK(ifi *Interface, ssid, psk string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	support, err := c.checkExtFeature(ifi, unix.NL80211_EXT_FEATURE_4WAY_HANDSHAKE_STA_PSK)
	if err != nil {
		return err
	}
	if !support {
		return ErrNotSupported
	}

	return c.execute(command{
		id:     unix.NL80211_CMD_CONNECT,
		idBy:   byNetDev,
		device: uint64(ifi.Index),
		flags:  netlink.Acknowledge,
		onSend: func(ae *netlink.AttributeEncoder) error {
			const (
				cipherSuites = 0xfac04
				akmSuites    = 0xfac02
			)

			ae.Bytes(unix.NL80211_ATTR_SSID, []byte(ssid))
			ae.Uint32(unix.NL80211_ATTR_WPA_VERSIONS, unix.NL80211_WPA_VERSION_2)
			ae.Uint32(unix.NL80211_ATTR_CIPHER_SUITE_GROUP, cipherSuites)
			ae.Uint32(unix.NL80211_ATTR_CIPHER_SUITES_PAIRWISE, cipherSuites)
			ae.Uint32(unix.NL80211_ATTR_AKM_SUITES, akmSuites)
			ae.Flag(unix.NL80211_ATTR_WANT_1X_4WAY_HS, true)
			ae.Bytes(unix.NL80211_ATTR_PMK, wpaPassphrase([]byte(ssid), []byte(psk)))
			ae.Uint32(unix.NL80211_ATTR_AUTH_TYPE, unix.NL80211_AUTHTYPE_OPEN_SYSTEM)
			return nil
		},
	})
}

// wpaPassphrase computes a WPA passphrase given an SSID and preshared key.
func wpaPassphrase(ssid, psk []byte) []byte {
	return pbkdf2.Key(psk, ssid, 4096, 32, sha1.New)
}

// checkExtFeature reports whether the physical radio backing ifi supports
// an extended feature.
func (c *client) checkExtFeature(ifi *Interface, feature uint) (bool, error) {
	var features []byte

	err := c.execute(command{
		id:     unix.NL80211_CMD_GET_WIPHY,
		idBy:   byNetDev,
		device: uint64(ifi.Index),
		flags:  netlink.Dump,
		onSend: func(ae *netlink.AttributeEncoder) error {
			ae.Flag(unix.NL80211_ATTR_SPLIT_WIPHY_DUMP, true)
			return nil
		},
		onReply: func(m genetlink.Message) error {
			if features != nil {
				return nil
			}

			attrs, err := netlink.UnmarshalAttributes(m.Data)
			if err != nil {
				return err
			}
			for _, a := range attrs {
				if a.Type == unix.NL80211_ATTR_EXT_FEATURES {
					features = a.Data
					break
				}
			}
			return nil
		},
	})
	if err != nil {
		return false, err
	}

	if feature/8 >= uint(len(features)) {
		return false, nil
	}
	return features[feature/8]&(1<<(feature%8)) != 0, nil
}
