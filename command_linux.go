//go:build linux
// +build linux

package wifictl

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// An addressing selects which kernel identifier a command is scoped by.
type addressing int

const (
	// byNone scopes a command to nothing, e.g. a dump over all devices.
	byNone addressing = iota

	// byPHY scopes a command to a physical radio (wiphy) index.
	byPHY

	// byNetDev scopes a command to a network device index.
	byNetDev

	// byWDev scopes a command to a wireless device identifier.
	byWDev
)

// A command is a declarative description of one nl80211 request. It is
// constructed and consumed by a single execute call and never persisted.
type command struct {
	// The nl80211 command identifier, e.g. unix.NL80211_CMD_GET_INTERFACE.
	id uint8

	// Addressing mode and the target device identifier it applies to.
	idBy   addressing
	device uint64

	// Additional netlink header flags; netlink.Request is always set.
	// netlink.Dump marks a multi-frame dump request.
	flags netlink.HeaderFlags

	// onSend, if non-nil, appends command-specific attributes to the
	// outgoing message. A failure aborts the operation before anything is
	// sent and surfaces as a local build error, not a kernel error.
	onSend func(ae *netlink.AttributeEncoder) error

	// onReply, if non-nil, consumes each payload frame of the reply. An
	// error aborts processing of that frame only; it is logged and the
	// remaining frames are still delivered.
	onReply func(m genetlink.Message) error
}

// A KernelError is a kernel rejection of a netlink command: the errno from
// the ERROR frame, plus the extended acknowledgement diagnostic text and
// attribute offset when the kernel supplied them.
type KernelError struct {
	// The nl80211 command that failed.
	Cmd uint8

	// The error code reported by the kernel.
	Errno syscall.Errno

	// Human-readable diagnostic from the kernel, if any.
	Message string

	// Offset of the offending attribute within the request, if reported.
	Offset int
}

// Error implements error.
func (e *KernelError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("nl80211 command %d failed: %v (-%d): %s",
			e.Cmd, e.Errno, int(e.Errno), e.Message)
	}
	return fmt.Sprintf("nl80211 command %d failed: %v (-%d)", e.Cmd, e.Errno, int(e.Errno))
}

// Unwrap returns the underlying errno, so callers can match with errors.Is
// against unix error values.
func (e *KernelError) Unwrap() error { return e.Errno }

// execute builds the netlink message described by cmd, transmits it on the
// generic netlink socket and drives the reply to a terminal result. Payload
// frames are routed to cmd.onReply; an ERROR frame resolves to a
// *KernelError; an ACK or end-of-dump frame resolves to success. The call
// blocks until a terminal frame arrives or the transport fails.
//
// The caller must hold c.mu.
func (c *client) execute(cmd command) error {
	ae := netlink.NewAttributeEncoder()

	switch cmd.idBy {
	case byPHY:
		ae.Uint32(unix.NL80211_ATTR_WIPHY, uint32(cmd.device))
	case byNetDev:
		ae.Uint32(unix.NL80211_ATTR_IFINDEX, uint32(cmd.device))
	case byWDev:
		ae.Uint64(unix.NL80211_ATTR_WDEV, cmd.device)
	}

	if cmd.onSend != nil {
		if err := cmd.onSend(ae); err != nil {
			return fmt.Errorf("building nl80211 command %d: %w", cmd.id, err)
		}
	}

	b, err := ae.Encode()
	if err != nil {
		return fmt.Errorf("building nl80211 command %d: %w", cmd.id, err)
	}

	req := genetlink.Message{
		Header: genetlink.Header{
			Command: cmd.id,
			Version: c.familyVersion,
		},
		Data: b,
	}

	nreq, err := c.c.Send(req, c.familyID, netlink.Request|cmd.flags)
	if err != nil {
		return fmt.Errorf("sending nl80211 command %d: %w", cmd.id, err)
	}

	// The transport resolves the terminal frame for us: Receive blocks
	// until the kernel's ACK, end-of-dump or ERROR frame arrives, and
	// surfaces ERROR frames (with any extended acknowledgement) as an
	// *netlink.OpError.
	msgs, replies, err := c.c.Receive()
	if err != nil {
		kerr := kernelError(cmd.id, err)

		var ke *KernelError
		if errors.As(kerr, &ke) {
			if ke.Message != "" {
				c.log.Error("nl80211 command failed",
					"cmd", ke.Cmd, "errno", int(ke.Errno), "extack", ke.Message)
			} else {
				c.log.Error("nl80211 command failed",
					"cmd", ke.Cmd, "errno", int(ke.Errno))
			}
		}

		return kerr
	}

	if err := netlink.Validate(nreq, replies); err != nil {
		return fmt.Errorf("validating nl80211 command %d reply: %w", cmd.id, err)
	}

	for i, m := range msgs {
		// A zero-errno ACK frame carries no nl80211 payload.
		if replies[i].Header.Type == netlink.Error {
			continue
		}
		if cmd.onReply == nil {
			continue
		}

		if err := cmd.onReply(m); err != nil {
			c.log.Error("parsing nl80211 reply", "cmd", cmd.id, "err", err)
		}
	}

	return nil
}

// kernelError translates a receive failure into a *KernelError when it
// carries a kernel errno, or wraps it as a transport error otherwise. Error
// codes outside the valid errno range are normalized to EPROTO, since a
// positive code in an ERROR frame violates netlink(7).
func kernelError(cmd uint8, err error) error {
	var op *netlink.OpError
	if errors.As(err, &op) {
		var errno syscall.Errno
		if errors.As(op.Err, &errno) {
			if errno == 0 || errno > unix.EHWPOISON {
				errno = unix.EPROTO
			}
			return &KernelError{
				Cmd:     cmd,
				Errno:   errno,
				Message: op.Message,
				Offset:  op.Offset,
			}
		}
	}

	return fmt.Errorf("nl80211 command %d: %w", cmd, err)
}
