// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm303

// RegAddr identifies a register. Values are the physical register addresses
// except for the six logical magnetometer output registers, which are
// negative and translated through the resolved device's layout table.
type RegAddr int

// Register map for the whole family. Where the same address means different
// things on different devices, both names are kept.
const (
	TempOutL   RegAddr = 0x05 // D
	TempOutH   RegAddr = 0x06 // D
	StatusM    RegAddr = 0x07 // D
	IntCtrlM   RegAddr = 0x12 // D
	IntSrcM    RegAddr = 0x13 // D
	IntThsLM   RegAddr = 0x14 // D
	IntThsHM   RegAddr = 0x15 // D
	OffsetXLM  RegAddr = 0x16 // D
	OffsetXHM  RegAddr = 0x17 // D
	OffsetYLM  RegAddr = 0x18 // D
	OffsetYHM  RegAddr = 0x19 // D
	OffsetZLM  RegAddr = 0x1A // D
	OffsetZHM  RegAddr = 0x1B // D
	ReferenceX RegAddr = 0x1C // D
	ReferenceY RegAddr = 0x1D // D
	ReferenceZ RegAddr = 0x1E // D

	Ctrl0          RegAddr = 0x1F // D
	Ctrl1          RegAddr = 0x20 // D
	CtrlReg1A      RegAddr = 0x20 // DLH, DLM, DLHC
	Ctrl2          RegAddr = 0x21 // D
	CtrlReg2A      RegAddr = 0x21 // DLH, DLM, DLHC
	Ctrl3          RegAddr = 0x22 // D
	CtrlReg3A      RegAddr = 0x22 // DLH, DLM, DLHC
	Ctrl4          RegAddr = 0x23 // D
	CtrlReg4A      RegAddr = 0x23 // DLH, DLM, DLHC
	Ctrl5          RegAddr = 0x24 // D
	CtrlReg5A      RegAddr = 0x24 // DLH, DLM, DLHC
	Ctrl6          RegAddr = 0x25 // D
	CtrlReg6A      RegAddr = 0x25 // DLHC
	HPFilterResetA RegAddr = 0x25 // DLH, DLM
	Ctrl7          RegAddr = 0x26 // D
	ReferenceA     RegAddr = 0x26 // DLH, DLM, DLHC
	StatusA        RegAddr = 0x27 // D
	StatusRegA     RegAddr = 0x27 // DLH, DLM, DLHC

	OutXLA RegAddr = 0x28
	OutXHA RegAddr = 0x29
	OutYLA RegAddr = 0x2A
	OutYHA RegAddr = 0x2B
	OutZLA RegAddr = 0x2C
	OutZHA RegAddr = 0x2D

	FifoCtrl     RegAddr = 0x2E // D
	FifoCtrlRegA RegAddr = 0x2E // DLHC
	FifoSrc      RegAddr = 0x2F // D
	FifoSrcRegA  RegAddr = 0x2F // DLHC

	IgCfg1        RegAddr = 0x30 // D
	Int1CfgA      RegAddr = 0x30 // DLH, DLM, DLHC
	IgSrc1        RegAddr = 0x31 // D
	Int1SrcA      RegAddr = 0x31 // DLH, DLM, DLHC
	IgThs1        RegAddr = 0x32 // D
	Int1ThsA      RegAddr = 0x32 // DLH, DLM, DLHC
	IgDur1        RegAddr = 0x33 // D
	Int1DurationA RegAddr = 0x33 // DLH, DLM, DLHC
	IgCfg2        RegAddr = 0x34 // D
	Int2CfgA      RegAddr = 0x34 // DLH, DLM, DLHC
	IgSrc2        RegAddr = 0x35 // D
	Int2SrcA      RegAddr = 0x35 // DLH, DLM, DLHC
	IgThs2        RegAddr = 0x36 // D
	Int2ThsA      RegAddr = 0x36 // DLH, DLM, DLHC
	IgDur2        RegAddr = 0x37 // D
	Int2DurationA RegAddr = 0x37 // DLH, DLM, DLHC

	ClickCfg     RegAddr = 0x38 // D
	ClickCfgA    RegAddr = 0x38 // DLHC
	ClickSrc     RegAddr = 0x39 // D
	ClickSrcA    RegAddr = 0x39 // DLHC
	ClickThs     RegAddr = 0x3A // D
	ClickThsA    RegAddr = 0x3A // DLHC
	TimeLimit    RegAddr = 0x3B // D
	TimeLimitA   RegAddr = 0x3B // DLHC
	TimeLatency  RegAddr = 0x3C // D
	TimeLatencyA RegAddr = 0x3C // DLHC
	TimeWindow   RegAddr = 0x3D // D
	TimeWindowA  RegAddr = 0x3D // DLHC
	ActThs       RegAddr = 0x3E // D
	ActDur       RegAddr = 0x3F // D

	CraRegM RegAddr = 0x00 // DLH, DLM, DLHC
	CrbRegM RegAddr = 0x01 // DLH, DLM, DLHC
	MrRegM  RegAddr = 0x02 // DLH, DLM, DLHC
	SrRegM  RegAddr = 0x09 // DLH, DLM, DLHC
	IraRegM RegAddr = 0x0A // DLH, DLM, DLHC
	IrbRegM RegAddr = 0x0B // DLH, DLM, DLHC
	IrcRegM RegAddr = 0x0C // DLH, DLM, DLHC

	WhoAmI RegAddr = 0x0F // D accelerometer, DLH/DLM magnetometer

	TempOutHM RegAddr = 0x31 // DLHC
	TempOutLM RegAddr = 0x32 // DLHC
)

// Logical magnetometer output registers. The physical addresses differ per
// device, so these dummies are resolved through the layout selected at Init.
const (
	OutXHM RegAddr = -1
	OutXLM RegAddr = -2
	OutYHM RegAddr = -3
	OutYLM RegAddr = -4
	OutZHM RegAddr = -5
	OutZLM RegAddr = -6
)

// magLayout holds the physical magnetometer output registers for one device.
type magLayout struct {
	xh, xl, yh, yl, zh, zl RegAddr
}

// Per-device magnetometer output register locations. The D also differs in
// byte order (low byte first) and in starting the burst at the low X byte;
// ReadMag handles that.
var magLayouts = [4]magLayout{
	DeviceDLH:  {xh: 0x03, xl: 0x04, yh: 0x05, yl: 0x06, zh: 0x07, zl: 0x08},
	DeviceDLM:  {xh: 0x03, xl: 0x04, zh: 0x05, zl: 0x06, yh: 0x07, yl: 0x08},
	DeviceDLHC: {xh: 0x03, xl: 0x04, zh: 0x05, zl: 0x06, yh: 0x07, yl: 0x08},
	DeviceD:    {xl: 0x08, xh: 0x09, yl: 0x0A, yh: 0x0B, zl: 0x0C, zh: 0x0D},
}
