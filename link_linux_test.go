//go:build linux
// +build linux

package wifictl

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsimonetti/rtnetlink"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

type fakeLinks struct {
	link   rtnetlink.LinkMessage
	getErr error
	set    []*rtnetlink.LinkMessage
}

func (f *fakeLinks) Get(_ uint32) (rtnetlink.LinkMessage, error) {
	return f.link, f.getErr
}

func (f *fakeLinks) Set(m *rtnetlink.LinkMessage) error {
	f.set = append(f.set, m)
	return nil
}

func TestLinux_clientSetStatusNoRouteSocket(t *testing.T) {
	c := testLinkClient(t)
	c.links = nil

	err := c.SetStatus("wlan0", true)
	if !errors.Is(err, unix.ENOTCONN) {
		t.Fatalf("expected a not-connected error, got: %v", err)
	}
}

func TestLinux_clientSetStatus(t *testing.T) {
	tests := []struct {
		name string
		up   bool
		msg  *rtnetlink.LinkMessage
	}{
		{
			name: "up",
			up:   true,
			msg: &rtnetlink.LinkMessage{
				Type:   unix.ARPHRD_ETHER,
				Index:  3,
				Flags:  unix.IFF_UP,
				Change: unix.IFF_UP,
			},
		},
		{
			name: "down",
			up:   false,
			msg: &rtnetlink.LinkMessage{
				Type:   unix.ARPHRD_ETHER,
				Index:  3,
				Flags:  0,
				Change: unix.IFF_UP,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testLinkClient(t)

			links := &fakeLinks{
				link: rtnetlink.LinkMessage{
					Type:  unix.ARPHRD_ETHER,
					Index: 3,
					Flags: unix.IFF_UP | unix.IFF_RUNNING,
				},
			}
			c.links = links
			c.ifindex = staticIfindex(t, "wlan0", 3)

			if err := c.SetStatus("wlan0", tt.up); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(links.set) != 1 {
				t.Fatalf("expected one link change, got %d", len(links.set))
			}
			if diff := cmp.Diff(tt.msg, links.set[0]); diff != "" {
				t.Fatalf("unexpected link message (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinux_clientSetStatusGetError(t *testing.T) {
	c := testLinkClient(t)
	c.links = &fakeLinks{getErr: errors.New("boom")}
	c.ifindex = staticIfindex(t, "wlan0", 3)

	if err := c.SetStatus("wlan0", true); err == nil {
		t.Fatal("expected an error, but none occurred")
	}
}

// testLinkClient builds a client whose generic netlink socket must never be
// touched; link status changes travel over route netlink only.
func testLinkClient(t *testing.T) *client {
	t.Helper()

	return testClient(t, func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		t.Error("unexpected nl80211 request during a link status change")
		return nil, io.EOF
	})
}
