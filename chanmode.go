package wifictl

import "strings"

// A ChanWidth is a channel width used when tuning an interface. The values
// copy the ordering of nl80211's channel width constants.
type ChanWidth uint32

const (
	ChanWidth20NoHT ChanWidth = iota
	ChanWidth20
	ChanWidth40
	ChanWidth80
	ChanWidth80P80
	ChanWidth160
	ChanWidth5
	ChanWidth10
	ChanWidth1
	ChanWidth2
	ChanWidth4
	ChanWidth8
	ChanWidth16
	ChanWidth320
)

// Legacy channel type codes for kernels predating the flexible channel
// width attribute. The values copy the ordering of nl80211's channel type
// constants.
const (
	chanNoHT = iota
	chanHT20
	chanHT40Minus
	chanHT40Plus
)

// A ChanMode describes how a bandwidth label maps onto the kernel's channel
// configuration attributes: the channel width enumerant, a fixed offset from
// the control frequency to the first center frequency, and the legacy
// channel type code for width families that still require one (-1 if none).
type ChanMode struct {
	Name            string
	Width           ChanWidth
	CenterFreq1Diff int
	LegacyChanType  int
}

var chanModes = []ChanMode{
	{Name: "20", Width: ChanWidth20, CenterFreq1Diff: 0, LegacyChanType: chanHT20},
	{Name: "40", Width: ChanWidth40, CenterFreq1Diff: 10, LegacyChanType: chanHT40Plus},
	{Name: "HT40-", Width: ChanWidth40, CenterFreq1Diff: -10, LegacyChanType: chanHT40Minus},
	{Name: "NOHT", Width: ChanWidth20NoHT, CenterFreq1Diff: 0, LegacyChanType: chanNoHT},
	{Name: "5MHz", Width: ChanWidth5, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "10MHz", Width: ChanWidth10, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "80", Width: ChanWidth80, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "160", Width: ChanWidth160, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "320MHz", Width: ChanWidth320, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "1MHz", Width: ChanWidth1, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "2MHz", Width: ChanWidth2, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "4MHz", Width: ChanWidth4, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "8MHz", Width: ChanWidth8, CenterFreq1Diff: 0, LegacyChanType: -1},
	{Name: "16MHz", Width: ChanWidth16, CenterFreq1Diff: 0, LegacyChanType: -1},
}

// GetChanMode returns the channel mode for a bandwidth label such as "20",
// "HT40-" or "320MHz". Matching is case-insensitive. An unrecognized label
// returns the zero value.
func GetChanMode(bandwidth string) ChanMode {
	for _, m := range chanModes {
		if strings.EqualFold(m.Name, bandwidth) {
			return m
		}
	}
	return ChanMode{}
}

// WidthMHz returns the nominal width of the mode in MHz, or 0 for widths
// narrower than 20MHz.
func (m ChanMode) WidthMHz() int {
	switch m.Width {
	case ChanWidth20, ChanWidth20NoHT:
		return 20
	case ChanWidth40:
		return 40
	case ChanWidth80:
		return 80
	case ChanWidth160:
		return 160
	case ChanWidth320:
		return 320
	}
	return 0
}

// Known segment start frequencies for the wide channel layouts of the 5GHz
// and 6GHz bands. The 320MHz table is based on 11be D2 E.1 Country
// information and operating classes.
var (
	segments80 = []int{
		5180, 5260, 5500, 5580, 5660, 5745, 5955, 6035, 6115, 6195,
		6275, 6355, 6435, 6515, 6595, 6675, 6755, 6835, 6195, 6995,
	}
	segments160 = []int{5180, 5500, 5955, 6115, 6275, 6435, 6595, 6755, 6915}
	segments320 = []int{5955, 6115, 6275, 6435, 6595, 6755}
)

// CenterFreq1 computes the first center frequency for tuning to the given
// control frequency with the given channel mode. For the 80, 160 and 320MHz
// widths the center is derived from the segment containing the control
// frequency; a control frequency outside every known segment is returned
// unmodified. All other widths apply the mode's fixed offset.
func CenterFreq1(mode ChanMode, freq int) int {
	switch mode.Width {
	case ChanWidth80:
		for _, start := range segments80 {
			if freq >= start && freq < start+80 {
				return start + 30
			}
		}
		return freq
	case ChanWidth160:
		for _, start := range segments160 {
			if freq >= start && freq < start+160 {
				return start + 70
			}
		}
		return freq
	case ChanWidth320:
		for _, start := range segments320 {
			if freq >= start && freq < start+160 {
				return start + 150
			}
		}
		return freq
	default:
		return freq + mode.CenterFreq1Diff
	}
}
