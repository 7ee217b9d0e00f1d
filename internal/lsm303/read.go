// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm303

// waitAvailable polls the transport until n bytes are readable or the
// configured deadline passes. The unsigned subtraction keeps the deadline
// correct across millisecond-counter wraparound.
func (d *Device) waitAvailable(n int) bool {
	start := d.clock.Millis()
	d.didTimeout = false
	for d.bus.Available() < n {
		if d.ioTimeout > 0 && d.clock.Millis()-start > d.ioTimeout {
			d.didTimeout = true
			return false
		}
	}
	return true
}

// ReadAcc burst-reads the three accelerometer channels into A. On timeout
// A keeps its previous value and TimeoutOccurred reports true.
func (d *Device) ReadAcc() {
	d.bus.BeginTransmission(d.accAddress)
	// MSB of the register address asserts slave-transmit subaddress
	// auto-increment.
	d.bus.Write(byte(OutXLA) | 1<<7)
	d.lastStatus = d.bus.EndTransmission()
	d.bus.RequestFrom(d.accAddress, 6)

	if !d.waitAvailable(6) {
		return
	}

	xla := d.bus.Read()
	xha := d.bus.Read()
	yla := d.bus.Read()
	yha := d.bus.Read()
	zla := d.bus.Read()
	zha := d.bus.Read()

	d.A.X = int16(uint16(xha)<<8 | uint16(xla))
	d.A.Y = int16(uint16(yha)<<8 | uint16(yla))
	d.A.Z = int16(uint16(zha)<<8 | uint16(zla))

	// The D outputs full 16-bit values. Everything else left-justifies a
	// 12-bit result, so shift right to discard the meaningless low nibble.
	// The arithmetic shift on a signed value keeps the sign.
	if d.device != DeviceD {
		d.A.X >>= 4
		d.A.Y >>= 4
		d.A.Z >>= 4
	}
}

// ReadMag burst-reads the three magnetometer channels into M. Byte order
// and starting register vary per device. On timeout M keeps its previous
// value and TimeoutOccurred reports true.
func (d *Device) ReadMag() {
	d.bus.BeginTransmission(d.magAddress)
	if d.device == DeviceD {
		// the D starts at the low X byte and needs the auto-increment MSB
		d.bus.Write(byte(d.layout.xl) | 1<<7)
	} else {
		// DLH, DLM, DLHC start at the high X byte
		d.bus.Write(byte(d.layout.xh))
	}
	d.lastStatus = d.bus.EndTransmission()
	d.bus.RequestFrom(d.magAddress, 6)

	if !d.waitAvailable(6) {
		return
	}

	var xl, xh, yl, yh, zl, zh byte
	switch d.device {
	case DeviceD:
		// X_L, X_H, Y_L, Y_H, Z_L, Z_H
		xl = d.bus.Read()
		xh = d.bus.Read()
		yl = d.bus.Read()
		yh = d.bus.Read()
		zl = d.bus.Read()
		zh = d.bus.Read()
	case DeviceDLH:
		// X_H, X_L, Y_H, Y_L, Z_H, Z_L
		xh = d.bus.Read()
		xl = d.bus.Read()
		yh = d.bus.Read()
		yl = d.bus.Read()
		zh = d.bus.Read()
		zl = d.bus.Read()
	default:
		// DLM, DLHC: X_H, X_L, Z_H, Z_L, Y_H, Y_L
		xh = d.bus.Read()
		xl = d.bus.Read()
		zh = d.bus.Read()
		zl = d.bus.Read()
		yh = d.bus.Read()
		yl = d.bus.Read()
	}

	d.M.X = int16(uint16(xh)<<8 | uint16(xl))
	d.M.Y = int16(uint16(yh)<<8 | uint16(yl))
	d.M.Z = int16(uint16(zh)<<8 | uint16(zl))
}

// Read refreshes both sample vectors.
func (d *Device) Read() {
	d.ReadAcc()
	d.ReadMag()
}
