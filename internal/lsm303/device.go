// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package lsm303 drives the LSM303 family of combined accelerometer /
// magnetometer chips over an injected byte transport. It detects which
// family member is attached, decodes the per-device raw sample encodings
// into signed 3-axis vectors, and derives a tilt-compensated compass
// heading from them.
package lsm303

import "fmt"

// DeviceType identifies a family member. The D integrates both sensors
// behind one bus address with 16-bit accelerometer output; the DLH, DLM
// and DLHC expose separate accelerometer and magnetometer addresses with
// 12-bit left-justified accelerometer output and differing magnetometer
// byte orders.
type DeviceType int

const (
	DeviceDLH DeviceType = iota
	DeviceDLM
	DeviceDLHC
	DeviceD
	DeviceAuto
)

func (t DeviceType) String() string {
	switch t {
	case DeviceDLH:
		return "DLH"
	case DeviceDLM:
		return "DLM"
	case DeviceDLHC:
		return "DLHC"
	case DeviceD:
		return "D"
	default:
		return "auto"
	}
}

// ParseDeviceType maps a configuration string to a DeviceType.
func ParseDeviceType(s string) (DeviceType, error) {
	switch s {
	case "", "auto":
		return DeviceAuto, nil
	case "d", "D":
		return DeviceD, nil
	case "dlh", "DLH":
		return DeviceDLH, nil
	case "dlm", "DLM":
		return DeviceDLM, nil
	case "dlhc", "DLHC":
		return DeviceDLHC, nil
	}
	return DeviceAuto, fmt.Errorf("unknown device type %q", s)
}

// SA0State is the state of the SA0 address-select pin.
type SA0State int

const (
	SA0Low SA0State = iota
	SA0High
	SA0Auto
)

func (s SA0State) String() string {
	switch s {
	case SA0Low:
		return "low"
	case SA0High:
		return "high"
	default:
		return "auto"
	}
}

// ParseSA0 maps a configuration string to an SA0State.
func ParseSA0(s string) (SA0State, error) {
	switch s {
	case "", "auto":
		return SA0Auto, nil
	case "low":
		return SA0Low, nil
	case "high":
		return SA0High, nil
	}
	return SA0Auto, fmt.Errorf("unknown sa0 state %q", s)
}

// 7-bit bus addresses for the family.
const (
	DSA0HighAddress       = 0b0011101 // D with SA0 high
	DSA0LowAddress        = 0b0011110 // D with SA0 low, or non-D magnetometer
	NonDMagAddress        = 0b0011110
	NonDAccSA0LowAddress  = 0b0011000 // non-D accelerometer with SA0 low
	NonDAccSA0HighAddress = 0b0011001 // non-D accelerometer with SA0 high
)

// WHO_AM_I identification bytes.
const (
	DWhoID   = 0x49
	DLMWhoID = 0x3C
)

// TestRegNAck is returned by a probe that received no byte back. It is
// outside the 0..255 range of valid register values, so a genuine zero or
// garbage response is never mistaken for a missing device.
const TestRegNAck = -1

// Device is one attached LSM303. Not safe for concurrent use; all bus
// operations block the caller until completion or timeout.
type Device struct {
	bus   Transport
	clock Clock

	device DeviceType
	sa0    SA0State

	accAddress byte
	magAddress byte
	layout     magLayout

	// A and M hold the last decoded samples. A read either refreshes a
	// vector wholesale or, on timeout, leaves it exactly as it was.
	A Vector[int16]
	M Vector[int16]

	// MMin/MMax are the magnetometer calibration bounds. The defaults
	// amount to an assumed bias of zero; calibrate the particular unit
	// for a usable heading.
	MMin Vector[int16]
	MMax Vector[int16]

	ioTimeout  uint32 // ms, 0 = no timeout
	didTimeout bool
	lastStatus byte
}

// New wraps a transport. A nil clock gets the system monotonic clock.
func New(bus Transport, clock Clock) *Device {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Device{
		bus:    bus,
		clock:  clock,
		device: DeviceAuto,
		sa0:    SA0Auto,
		MMin:   Vector[int16]{X: -32767, Y: -32767, Z: -32767},
		MMax:   Vector[int16]{X: +32767, Y: +32767, Z: +32767},
	}
}

// Init resolves which device is attached and on which addresses. Pass
// DeviceAuto/SA0Auto to probe, or a known type/pin state to pin them.
// Returns false when no device responds on any candidate address; the
// caller decides whether to retry or give up.
func (d *Device) Init(device DeviceType, sa0 SA0State) bool {
	if device == DeviceAuto {
		if d.testReg(DSA0HighAddress, WhoAmI) == DWhoID {
			// responds on 0011101: D with SA0 high
			device = DeviceD
			sa0 = SA0High
		} else {
			switch d.testReg(DSA0LowAddress, WhoAmI) {
			case DWhoID:
				// responds on 0011110 with the D id: D with SA0 low
				device = DeviceD
				sa0 = SA0Low
			case DLMWhoID:
				// DLM magnetometer; accelerometer SA0 still indeterminate
				device = DeviceDLM
			default:
				// might be DLHC or DLH; guess from the accelerometer
				// address (DLHC has no SA0 pin but sits on the SA0-high
				// accelerometer address, DLH breakouts commonly pull SA0 low)
				if d.testReg(NonDAccSA0HighAddress, CtrlReg1A) != TestRegNAck {
					device = DeviceDLHC
					sa0 = SA0High
				} else if d.testReg(NonDAccSA0LowAddress, CtrlReg1A) != TestRegNAck {
					device = DeviceDLH
					sa0 = SA0Low
				} else {
					// nothing responded meaningfully
					return false
				}
			}
		}
	}

	if sa0 == SA0Auto {
		switch device {
		case DeviceD:
			if d.testReg(DSA0HighAddress, WhoAmI) == DWhoID {
				sa0 = SA0High
			} else if d.testReg(DSA0LowAddress, WhoAmI) == DWhoID {
				sa0 = SA0Low
			} else {
				return false
			}
		case DeviceDLM, DeviceDLH:
			if d.testReg(NonDAccSA0HighAddress, CtrlReg1A) != TestRegNAck {
				sa0 = SA0High
			} else if d.testReg(NonDAccSA0LowAddress, CtrlReg1A) != TestRegNAck {
				sa0 = SA0Low
			} else {
				return false
			}
		}
	}

	d.device = device
	d.sa0 = sa0

	switch device {
	case DeviceD:
		if sa0 == SA0High {
			d.accAddress = DSA0HighAddress
		} else {
			d.accAddress = DSA0LowAddress
		}
		d.magAddress = d.accAddress
	case DeviceDLHC:
		d.accAddress = NonDAccSA0HighAddress
		d.magAddress = NonDMagAddress
	default: // DLM, DLH
		if sa0 == SA0High {
			d.accAddress = NonDAccSA0HighAddress
		} else {
			d.accAddress = NonDAccSA0LowAddress
		}
		d.magAddress = NonDMagAddress
	}
	d.layout = magLayouts[device]
	return true
}

// EnableDefault turns both sub-devices on in continuous conversion mode.
func (d *Device) EnableDefault() {
	if d.device == DeviceD {
		// 0x57: 50 Hz ODR, all accelerometer axes enabled
		d.WriteAccReg(Ctrl1, 0x57)
		// continuous conversion mode
		d.WriteMagReg(Ctrl7, 0x00)
		// 0x70: high resolution mode, 50 Hz ODR
		d.WriteMagReg(Ctrl5, 0x70)
	} else {
		// 0x27: normal power mode (DLHC: 10 Hz), all axes enabled
		d.WriteAccReg(CtrlReg1A, 0x27)
		if d.device == DeviceDLHC {
			d.WriteAccReg(CtrlReg4A, 0x08) // high resolution mode
		}
		// continuous conversion mode
		d.WriteMagReg(MrRegM, 0x00)
	}
}

// Type returns the resolved device type.
func (d *Device) Type() DeviceType { return d.device }

// SA0 returns the resolved SA0 pin state.
func (d *Device) SA0() SA0State { return d.sa0 }

// AccAddress returns the resolved accelerometer bus address.
func (d *Device) AccAddress() byte { return d.accAddress }

// MagAddress returns the resolved magnetometer bus address. Equal to
// AccAddress on the D.
func (d *Device) MagAddress() byte { return d.magAddress }

// SetTimeout sets the burst-read deadline in milliseconds. 0 disables it,
// leaving reads free to block indefinitely.
func (d *Device) SetTimeout(ms uint32) { d.ioTimeout = ms }

// Timeout returns the configured burst-read deadline in milliseconds.
func (d *Device) Timeout() uint32 { return d.ioTimeout }

// TimeoutOccurred reports whether the most recent read attempt hit its
// deadline. The flag is overwritten on every read attempt.
func (d *Device) TimeoutOccurred() bool { return d.didTimeout }

// ClearTimeout resets the timeout flag.
func (d *Device) ClearTimeout() { d.didTimeout = false }

// LastStatus returns the status code of the last completed transaction.
func (d *Device) LastStatus() byte { return d.lastStatus }

// SetCalibration installs magnetometer min/max bounds measured for this
// unit. Only their per-axis midpoints are used, as the heading offset.
func (d *Device) SetCalibration(min, max Vector[int16]) {
	d.MMin = min
	d.MMax = max
}
