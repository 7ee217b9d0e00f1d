// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm303

// translateMagReg resolves a logical magnetometer output register to its
// physical address on the current device. Non-negative registers pass
// through unchanged.
func (d *Device) translateMagReg(reg RegAddr) RegAddr {
	if reg >= 0 {
		return reg
	}
	switch reg {
	case OutXHM:
		return d.layout.xh
	case OutXLM:
		return d.layout.xl
	case OutYHM:
		return d.layout.yh
	case OutYLM:
		return d.layout.yl
	case OutZHM:
		return d.layout.zh
	case OutZLM:
		return d.layout.zl
	}
	return reg
}

// WriteAccReg writes an accelerometer register.
func (d *Device) WriteAccReg(reg RegAddr, value byte) {
	d.bus.BeginTransmission(d.accAddress)
	d.bus.Write(byte(reg))
	d.bus.Write(value)
	d.lastStatus = d.bus.EndTransmission()
}

// ReadAccReg reads an accelerometer register.
func (d *Device) ReadAccReg(reg RegAddr) byte {
	d.bus.BeginTransmission(d.accAddress)
	d.bus.Write(byte(reg))
	d.lastStatus = d.bus.EndTransmission()
	d.bus.RequestFrom(d.accAddress, 1)
	return d.bus.Read()
}

// WriteMagReg writes a magnetometer register, translating the logical
// OUT_*_M dummies to their device-specific addresses.
func (d *Device) WriteMagReg(reg RegAddr, value byte) {
	reg = d.translateMagReg(reg)
	d.bus.BeginTransmission(d.magAddress)
	d.bus.Write(byte(reg))
	d.bus.Write(value)
	d.lastStatus = d.bus.EndTransmission()
}

// ReadMagReg reads a magnetometer register, translating the logical
// OUT_*_M dummies to their device-specific addresses.
func (d *Device) ReadMagReg(reg RegAddr) byte {
	reg = d.translateMagReg(reg)
	d.bus.BeginTransmission(d.magAddress)
	d.bus.Write(byte(reg))
	d.lastStatus = d.bus.EndTransmission()
	d.bus.RequestFrom(d.magAddress, 1)
	return d.bus.Read()
}

// WriteReg writes any register by id. Access goes through the magnetometer
// sub-address: on the D both halves share one address anyway, and the
// magnetometer path is the one that can translate OUT_*_M and the
// TEMP_OUT_*_M pair. Use WriteAccReg directly to address the
// accelerometer side of a split device.
func (d *Device) WriteReg(reg RegAddr, value byte) {
	d.WriteMagReg(reg, value)
}

// ReadReg reads any register by id, routed like WriteReg.
func (d *Device) ReadReg(reg RegAddr) byte {
	return d.ReadMagReg(reg)
}

// testReg probes one register at an arbitrary bus address. It returns the
// register value, or TestRegNAck when nothing answered, which is how a
// missing device on that address shows up.
func (d *Device) testReg(addr byte, reg RegAddr) int {
	d.bus.BeginTransmission(addr)
	d.bus.Write(byte(reg))
	d.lastStatus = d.bus.EndTransmission()

	d.bus.RequestFrom(addr, 1)
	if d.bus.Available() > 0 {
		return int(d.bus.Read())
	}
	return TestRegNAck
}
