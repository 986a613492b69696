//go:build linux
// +build linux

package wifictl

import (
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/genetlink/genltest"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

func TestLinux_executeAddressing(t *testing.T) {
	tests := []struct {
		name   string
		idBy   addressing
		device uint64
		attrs  []netlink.Attribute
	}{
		{
			name: "none",
			idBy: byNone,
		},
		{
			name:   "phy",
			idBy:   byPHY,
			device: 1,
			attrs: []netlink.Attribute{{
				Type: unix.NL80211_ATTR_WIPHY,
				Data: nlenc.Uint32Bytes(1),
			}},
		},
		{
			name:   "netdev",
			idBy:   byNetDev,
			device: 2,
			attrs: []netlink.Attribute{{
				Type: unix.NL80211_ATTR_IFINDEX,
				Data: nlenc.Uint32Bytes(2),
			}},
		},
		{
			name:   "wdev",
			idBy:   byWDev,
			device: 3,
			attrs: []netlink.Attribute{{
				Type: unix.NL80211_ATTR_WDEV,
				Data: nlenc.Uint64Bytes(3),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []netlink.Attribute
			c := testClient(t, func(greq genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
				attrs, err := netlink.UnmarshalAttributes(greq.Data)
				if err != nil {
					t.Fatalf("failed to unmarshal request attributes: %v", err)
				}
				got = attrs
				return nil, io.EOF
			})
			defer c.Close()

			err := c.execute(command{
				id:     unix.NL80211_CMD_GET_INTERFACE,
				idBy:   tt.idBy,
				device: tt.device,
				flags:  netlink.Acknowledge,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(tt.attrs) == 0 && len(got) == 0 {
				return
			}
			if diff := diffNetlinkAttributes(tt.attrs, got); diff != "" {
				t.Fatalf("unexpected request attributes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinux_executeOnSendErrorNothingSent(t *testing.T) {
	var sent bool
	c := testClient(t, func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		sent = true
		return nil, io.EOF
	})
	defer c.Close()

	err := c.execute(command{
		id: unix.NL80211_CMD_SET_WIPHY,
		onSend: func(_ *netlink.AttributeEncoder) error {
			return errors.New("boom")
		},
	})
	if err == nil {
		t.Fatal("expected an error, but none occurred")
	}
	if !strings.Contains(err.Error(), "building") {
		t.Fatalf("expected a build error, got: %v", err)
	}
	if sent {
		t.Fatal("a request was sent after the build failed")
	}
}

func TestLinux_executeKernelError(t *testing.T) {
	c := testClient(t, func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		return nil, genltest.Error(int(syscall.EBUSY))
	})
	defer c.Close()

	err := c.execute(command{
		id:    unix.NL80211_CMD_SET_WIPHY,
		flags: netlink.Acknowledge,
	})

	var kerr *KernelError
	if !errors.As(err, &kerr) {
		t.Fatalf("expected a *KernelError, got: %#v", err)
	}
	if want, got := syscall.EBUSY, kerr.Errno; want != got {
		t.Fatalf("unexpected errno:\n- want: %v\n-  got: %v", want, got)
	}
	if want, got := uint8(unix.NL80211_CMD_SET_WIPHY), kerr.Cmd; want != got {
		t.Fatalf("unexpected command:\n- want: %d\n-  got: %d", want, got)
	}
	if !errors.Is(err, unix.EBUSY) {
		t.Fatal("error does not match unix.EBUSY")
	}
}

func TestLinux_executeRoutesAllReplyFrames(t *testing.T) {
	c := testClient(t, func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		return []genetlink.Message{
			{
				Header: genetlink.Header{Command: unix.NL80211_CMD_NEW_INTERFACE},
				Data:   []byte{1},
			},
			{
				Header: genetlink.Header{Command: unix.NL80211_CMD_NEW_INTERFACE},
				Data:   []byte{2},
			},
			{
				Header: genetlink.Header{Command: unix.NL80211_CMD_NEW_INTERFACE},
				Data:   []byte{3},
			},
		}, nil
	})
	defer c.Close()

	var got []byte
	err := c.execute(command{
		id:    unix.NL80211_CMD_GET_INTERFACE,
		flags: netlink.Dump,
		onReply: func(m genetlink.Message) error {
			got = append(got, m.Data[0])
			if m.Data[0] == 1 {
				// A bad frame must not stop delivery of the rest.
				return errors.New("boom")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []byte{1, 2, 3}; len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("unexpected frames routed:\n- want: %v\n-  got: %v", want, got)
	}
}

func TestLinux_kernelErrorTranslation(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		kerr  *KernelError
		wraps bool
	}{
		{
			name: "errno with extended acknowledgement",
			err: &netlink.OpError{
				Op:      "receive",
				Err:     syscall.EINVAL,
				Message: "bad attribute",
				Offset:  12,
			},
			kerr: &KernelError{
				Cmd:     unix.NL80211_CMD_SET_WIPHY,
				Errno:   syscall.EINVAL,
				Message: "bad attribute",
				Offset:  12,
			},
		},
		{
			name: "zero errno normalized to EPROTO",
			err:  &netlink.OpError{Op: "receive", Err: syscall.Errno(0)},
			kerr: &KernelError{Cmd: unix.NL80211_CMD_SET_WIPHY, Errno: unix.EPROTO},
		},
		{
			name: "out-of-range errno normalized to EPROTO",
			err:  &netlink.OpError{Op: "receive", Err: syscall.Errno(200)},
			kerr: &KernelError{Cmd: unix.NL80211_CMD_SET_WIPHY, Errno: unix.EPROTO},
		},
		{
			name:  "transport error passes through",
			err:   errors.New("socket closed"),
			wraps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernelError(unix.NL80211_CMD_SET_WIPHY, tt.err)

			var kerr *KernelError
			if tt.wraps {
				if errors.As(got, &kerr) {
					t.Fatalf("expected a transport error, got: %v", got)
				}
				if !errors.Is(got, tt.err) {
					t.Fatalf("transport error does not wrap the cause: %v", got)
				}
				return
			}

			if !errors.As(got, &kerr) {
				t.Fatalf("expected a *KernelError, got: %#v", got)
			}
			if *kerr != *tt.kerr {
				t.Fatalf("unexpected kernel error:\n- want: %+v\n-  got: %+v",
					tt.kerr, kerr)
			}
		})
	}
}

func TestLinux_kernelErrorString(t *testing.T) {
	err := &KernelError{
		Cmd:     unix.NL80211_CMD_SET_WIPHY,
		Errno:   syscall.EBUSY,
		Message: "wiphy busy",
	}

	s := err.Error()
	for _, want := range []string{"wiphy busy", "-16"} {
		if !strings.Contains(s, want) {
			t.Fatalf("error string %q does not contain %q", s, want)
		}
	}
}
