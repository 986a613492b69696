package wifictl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetChanMode(t *testing.T) {
	tests := []struct {
		name      string
		bandwidth string
		mode      ChanMode
	}{
		{
			name:      "exact",
			bandwidth: "HT40-",
			mode:      ChanMode{Name: "HT40-", Width: ChanWidth40, CenterFreq1Diff: -10, LegacyChanType: chanHT40Minus},
		},
		{
			name:      "case-insensitive",
			bandwidth: "noht",
			mode:      ChanMode{Name: "NOHT", Width: ChanWidth20NoHT, CenterFreq1Diff: 0, LegacyChanType: chanNoHT},
		},
		{
			name:      "mixed case with suffix",
			bandwidth: "320mhz",
			mode:      ChanMode{Name: "320MHz", Width: ChanWidth320, CenterFreq1Diff: 0, LegacyChanType: -1},
		},
		{
			name:      "unknown label",
			bandwidth: "1337",
			mode:      ChanMode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetChanMode(tt.bandwidth)
			if diff := cmp.Diff(tt.mode, got); diff != "" {
				t.Fatalf("unexpected channel mode (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChanModeWidthMHz(t *testing.T) {
	tests := []struct {
		bandwidth string
		mhz       int
	}{
		{bandwidth: "NOHT", mhz: 20},
		{bandwidth: "20", mhz: 20},
		{bandwidth: "40", mhz: 40},
		{bandwidth: "80", mhz: 80},
		{bandwidth: "160", mhz: 160},
		{bandwidth: "320MHz", mhz: 320},
		{bandwidth: "5MHz", mhz: 0},
	}

	for _, tt := range tests {
		t.Run(tt.bandwidth, func(t *testing.T) {
			if want, got := tt.mhz, GetChanMode(tt.bandwidth).WidthMHz(); want != got {
				t.Fatalf("unexpected width:\n- want: %d\n-  got: %d", want, got)
			}
		})
	}
}

func TestCenterFreq1(t *testing.T) {
	tests := []struct {
		name      string
		bandwidth string
		freq      int
		cf1       int
	}{
		{name: "80MHz UNII-1", bandwidth: "80", freq: 5180, cf1: 5210},
		{name: "80MHz secondary channel", bandwidth: "80", freq: 5220, cf1: 5210},
		{name: "80MHz UNII-3", bandwidth: "80", freq: 5745, cf1: 5775},
		{name: "80MHz 6GHz", bandwidth: "80", freq: 5975, cf1: 5985},
		{name: "80MHz outside known segments", bandwidth: "80", freq: 2412, cf1: 2412},
		{name: "160MHz", bandwidth: "160", freq: 5500, cf1: 5570},
		{name: "160MHz upper half", bandwidth: "160", freq: 5620, cf1: 5570},
		{name: "160MHz 6GHz top segment", bandwidth: "160", freq: 6935, cf1: 6985},
		{name: "160MHz outside known segments", bandwidth: "160", freq: 5400, cf1: 5400},
		{name: "320MHz", bandwidth: "320MHz", freq: 5955, cf1: 6105},
		{name: "320MHz second segment", bandwidth: "320MHz", freq: 6115, cf1: 6265},
		{name: "320MHz outside known segments", bandwidth: "320MHz", freq: 2412, cf1: 2412},
		{name: "40MHz plus", bandwidth: "40", freq: 5180, cf1: 5190},
		{name: "40MHz minus", bandwidth: "HT40-", freq: 5200, cf1: 5190},
		{name: "20MHz", bandwidth: "20", freq: 2412, cf1: 2412},
		{name: "NOHT", bandwidth: "NOHT", freq: 2437, cf1: 2437},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode := GetChanMode(tt.bandwidth)
			if want, got := tt.cf1, CenterFreq1(mode, tt.freq); want != got {
				t.Fatalf("unexpected first center frequency:\n- want: %d\n-  got: %d",
					want, got)
			}
		})
	}
}
