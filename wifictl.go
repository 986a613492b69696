package wifictl

import (
	"fmt"
	"net"
)

// An InterfaceType is the operating mode of an Interface.
type InterfaceType int

// NOTE: InterfaceType copies the ordering of nl80211's interface type
// constants.
const (
	// InterfaceTypeUnspecified indicates that an interface's type is unspecified
	// and the driver determines its function.
	InterfaceTypeUnspecified InterfaceType = iota

	// InterfaceTypeAdHoc indicates that an interface is part of an independent
	// basic service set (BSS) of client devices without a controlling access
	// point.
	InterfaceTypeAdHoc

	// InterfaceTypeStation indicates that an interface is part of a managed
	// basic service set (BSS) of client devices with a controlling access point.
	InterfaceTypeStation

	// InterfaceTypeAP indicates that an interface is an access point.
	InterfaceTypeAP

	// InterfaceTypeAPVLAN indicates that an interface is a VLAN interface
	// associated with an access point.
	InterfaceTypeAPVLAN

	// InterfaceTypeWDS indicates that an interface is a wireless distribution
	// interface, used as part of a network of multiple access points.
	InterfaceTypeWDS

	// InterfaceTypeMonitor indicates that an interface is a monitor interface,
	// receiving all frames from all clients in a given network.
	InterfaceTypeMonitor

	// InterfaceTypeMeshPoint indicates that an interface is part of a wireless
	// mesh network.
	InterfaceTypeMeshPoint

	// InterfaceTypeP2PClient indicates that an interface is a client within
	// a peer-to-peer network.
	InterfaceTypeP2PClient

	// InterfaceTypeP2PGroupOwner indicates that an interface is the group
	// owner within a peer-to-peer network.
	InterfaceTypeP2PGroupOwner

	// InterfaceTypeP2PDevice indicates that an interface is a device within
	// a peer-to-peer client network.
	InterfaceTypeP2PDevice

	// InterfaceTypeOCB indicates that an interface is outside the context
	// of a basic service set (BSS).
	InterfaceTypeOCB

	// InterfaceTypeNAN indicates that an interface is part of a near-me
	// area network (NAN).
	InterfaceTypeNAN
)

// String returns the string representation of an InterfaceType.
func (t InterfaceType) String() string {
	switch t {
	case InterfaceTypeUnspecified:
		return "unspecified"
	case InterfaceTypeAdHoc:
		return "ad-hoc"
	case InterfaceTypeStation:
		return "station"
	case InterfaceTypeAP:
		return "access point"
	case InterfaceTypeAPVLAN:
		return "access point/VLAN"
	case InterfaceTypeWDS:
		return "wireless distribution"
	case InterfaceTypeMonitor:
		return "monitor"
	case InterfaceTypeMeshPoint:
		return "mesh point"
	case InterfaceTypeP2PClient:
		return "P2P client"
	case InterfaceTypeP2PGroupOwner:
		return "P2P group owner"
	case InterfaceTypeP2PDevice:
		return "P2P device"
	case InterfaceTypeOCB:
		return "outside context of BSS"
	case InterfaceTypeNAN:
		return "near-me area network"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// An Interface is the frozen configuration record of a WiFi network
// interface, assembled from one or more kernel replies.
type Interface struct {
	// The index of the network device.
	Index int

	// The name of the interface.
	Name string

	// The hardware address of the interface.
	HardwareAddr net.HardwareAddr

	// The physical radio (wiphy) that this interface belongs to.
	PHY int

	// The wireless device identifier of this interface within a PHY.
	Device int

	// The operating mode of the interface.
	Type InterfaceType

	// The interface's wireless frequency in MHz.
	Frequency int

	// The interface's transmit power in dBm.
	TxPower int
}

// interfaceBuilder accumulates the optional fields of an Interface as they
// arrive across one or more kernel replies. A builder assembled from a
// partial reply, for example one carrying only transmit power, can be merged
// with an earlier one before freezing.
type interfaceBuilder struct {
	index        *int
	name         *string
	hardwareAddr net.HardwareAddr
	phy          *int
	device       *int
	typ          *InterfaceType
	frequency    *int
	txPower      *int
}

// freeze produces an immutable Interface, filling any field the kernel never
// reported with an explicit default.
func (b *interfaceBuilder) freeze() *Interface {
	ifi := &Interface{
		Name: "unnamed interface",
		Type: InterfaceTypeUnspecified,
	}

	if b.index != nil {
		ifi.Index = *b.index
	}
	if b.name != nil {
		ifi.Name = *b.name
	}
	if b.hardwareAddr != nil {
		ifi.HardwareAddr = b.hardwareAddr
	}
	if b.phy != nil {
		ifi.PHY = *b.phy
	}
	if b.device != nil {
		ifi.Device = *b.device
	}
	if b.typ != nil {
		ifi.Type = *b.typ
	}
	if b.frequency != nil {
		ifi.Frequency = *b.frequency
	}
	if b.txPower != nil {
		ifi.TxPower = *b.txPower
	}

	return ifi
}

// Constants representing the standard WiFi frequency bands. The values copy
// the ordering of nl80211's band constants.
const (
	Band2GHz = iota
	Band5GHz
	Band60GHz
	Band6GHz
)

// FrequencyToChannel returns the channel number given the frequency in MHz,
// as defined by IEEE 802.11-2007, 17.3.8.3.2 and Annex J, with the 6GHz
// rules of 802.11ax D6.1 27.3.23.2 and Annex E.
func FrequencyToChannel(freq int) int {
	if freq < 1000 {
		return 0
	}
	switch {
	case freq == 2484:
		return 14
	case freq == 5935:
		return 2
	case freq < 2484:
		return (freq - 2407) / 5
	case freq >= 4910 && freq <= 4980:
		return (freq - 4000) / 5
	case freq < 5950:
		return (freq - 5000) / 5
	case freq <= 45000:
		return (freq - 5950) / 5
	case freq >= 58320 && freq <= 70200:
		return (freq - 56160) / 2160
	default:
		return 0
	}
}

// ChannelToFrequency returns the frequency given the channel number and the
// band, as there are overlapping channel numbers between bands.
func ChannelToFrequency(channel int, band int) int {
	if channel <= 0 {
		return 0
	}

	switch band {
	case Band2GHz:
		if channel == 14 {
			return 2484
		} else if channel < 14 {
			return 2407 + channel*5
		}
	case Band5GHz:
		if channel >= 182 && channel <= 196 {
			return 4000 + channel*5
		}
		return 5000 + channel*5
	case Band6GHz:
		if channel == 2 {
			return 5935
		}
		return 5950 + channel*5
	case Band60GHz:
		if channel < 7 {
			return 56160 + channel*2160
		}
	}
	return 0
}
