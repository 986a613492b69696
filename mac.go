package wifictl

import (
	"fmt"
	"net"
)

// FormatMAC renders a hardware address as a lower-case, colon-separated
// string, e.g. "de:ad:be:ef:00:01".
func FormatMAC(addr net.HardwareAddr) string {
	if len(addr) == 0 {
		return ""
	}

	b := make([]byte, 0, len(addr)*3-1)
	for i, octet := range addr {
		if i > 0 {
			b = append(b, ':')
		}
		b = append(b, hexDigits[octet>>4], hexDigits[octet&0xf])
	}

	return string(b)
}

const hexDigits = "0123456789abcdef"

// ParseMAC parses a 6-byte hardware address from text. Colon, dash, space
// and tab separators are accepted interchangeably, or the twelve hex digits
// may run together. Any other character, or a digit count other than twelve,
// is an error.
func ParseMAC(s string) (net.HardwareAddr, error) {
	addr := make(net.HardwareAddr, 0, 6)

	// High nibble of the octet being assembled, or -1 when none pending.
	hi := -1
	for _, c := range s {
		switch c {
		case ':', '-', ' ', '\t':
			continue
		}

		v := hexVal(byte(c))
		if v < 0 {
			return nil, fmt.Errorf("invalid hardware address character %q in %q", c, s)
		}

		if hi < 0 {
			hi = v
			continue
		}
		if len(addr) == 6 {
			return nil, fmt.Errorf("hardware address %q too long", s)
		}
		addr = append(addr, byte(hi<<4|v))
		hi = -1
	}

	if hi >= 0 || len(addr) != 6 {
		return nil, fmt.Errorf("hardware address %q must contain exactly 6 octets", s)
	}

	return addr, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return 10 + int(c-'a')
	case c >= 'A' && c <= 'F':
		return 10 + int(c-'A')
	}
	return -1
}
