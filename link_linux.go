//go:build linux
// +build linux

package wifictl

import (
	"fmt"

	"github.com/jsimonetti/rtnetlink"
	"golang.org/x/sys/unix"
)

// A linkService is the subset of route netlink link operations the client
// uses, satisfied by *rtnetlink.LinkService and by test fakes.
type linkService interface {
	Get(index uint32) (rtnetlink.LinkMessage, error)
	Set(m *rtnetlink.LinkMessage) error
}

// SetStatus brings the named interface administratively up or down.
func (c *client) SetStatus(name string, up bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.setStatus(name, up)
}

// setStatus is SetStatus without the lock, for use inside composite
// operations. The caller must hold c.mu.
func (c *client) setStatus(name string, up bool) error {
	if c.links == nil {
		return fmt.Errorf("route netlink socket not connected: %w", unix.ENOTCONN)
	}

	index, err := c.ifindex(name)
	if err != nil {
		return fmt.Errorf("resolving interface %q: %w", name, err)
	}

	link, err := c.links.Get(uint32(index))
	if err != nil {
		return fmt.Errorf("querying link %q: %w", name, err)
	}

	var flags uint32
	if up {
		flags = unix.IFF_UP
	}

	err = c.links.Set(&rtnetlink.LinkMessage{
		Family: link.Family,
		Type:   link.Type,
		Index:  uint32(index),
		Flags:  flags,
		Change: unix.IFF_UP,
	})
	if err != nil {
		return fmt.Errorf("setting link %q status: %w", name, err)
	}

	c.log.Info("changed link status", "interface", name, "up", up)
	return nil
}
