//go:build linux
// +build linux

// Package rfkill unblocks radio kill switches through the /dev/rfkill
// character device.
package rfkill

import (
	"fmt"
	"os"
)

const devPath = "/dev/rfkill"

// Constants from linux/rfkill.h.
const (
	typeAll      = 0 // RFKILL_TYPE_ALL
	opChangeAll  = 3 // RFKILL_OP_CHANGE_ALL
	eventSize    = 8 // sizeof(struct rfkill_event)
	eventOpOff   = 5 // offsetof(struct rfkill_event, op)
	eventTypeOff = 4 // offsetof(struct rfkill_event, type)
)

// UnblockAll lifts the software block from every kill switch on the system,
// of all radio types. It is the recovery step used when tuning a freshly
// created interface fails because the radio is soft-blocked.
func UnblockAll() error {
	return unblockAll(devPath)
}

func unblockAll(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("opening rfkill device: %w", err)
	}
	defer f.Close()

	// struct rfkill_event { u32 idx; u8 type; u8 op; u8 soft; u8 hard; }
	// with idx ignored for CHANGE_ALL and soft=0 meaning unblocked.
	var ev [eventSize]byte
	ev[eventTypeOff] = typeAll
	ev[eventOpOff] = opChangeAll

	if _, err := f.Write(ev[:]); err != nil {
		return fmt.Errorf("writing rfkill event: %w", err)
	}
	return nil
}
