package lsm303

import "testing"

// setupDevice attaches a device of the given type with known addresses and
// returns the accelerometer and magnetometer register files.
func setupDevice(t *testing.T, f *fakeTransport, dev DeviceType) (d *Device, acc, mag []byte) {
	t.Helper()
	switch dev {
	case DeviceD:
		acc = f.addDevice(DSA0HighAddress)
		acc[WhoAmI] = DWhoID
		mag = acc
	case DeviceDLHC:
		mag = f.addDevice(NonDMagAddress)
		acc = f.addDevice(NonDAccSA0HighAddress)
	case DeviceDLM:
		mag = f.addDevice(NonDMagAddress)
		mag[WhoAmI] = DLMWhoID
		acc = f.addDevice(NonDAccSA0HighAddress)
	case DeviceDLH:
		mag = f.addDevice(NonDMagAddress)
		acc = f.addDevice(NonDAccSA0LowAddress)
	}
	d = New(f, &fakeClock{})
	if !d.Init(DeviceAuto, SA0Auto) {
		t.Fatal("Init failed")
	}
	if d.Type() != dev {
		t.Fatalf("resolved %v, want %v", d.Type(), dev)
	}
	return d, acc, mag
}

// storeAcc writes one accelerometer sample little-endian at OUT_X_L_A.
func storeAcc(regs []byte, x, y, z int16) {
	vals := []int16{x, y, z}
	for i, v := range vals {
		regs[int(OutXLA)+2*i] = byte(uint16(v))
		regs[int(OutXLA)+2*i+1] = byte(uint16(v) >> 8)
	}
}

// storeMag writes one magnetometer sample using the device's layout.
func storeMag(regs []byte, layout magLayout, x, y, z int16) {
	regs[layout.xh] = byte(uint16(x) >> 8)
	regs[layout.xl] = byte(uint16(x))
	regs[layout.yh] = byte(uint16(y) >> 8)
	regs[layout.yl] = byte(uint16(y))
	regs[layout.zh] = byte(uint16(z) >> 8)
	regs[layout.zl] = byte(uint16(z))
}

func TestReadAccD16Bit(t *testing.T) {
	f := newFakeTransport()
	d, acc, _ := setupDevice(t, f, DeviceD)

	// full 16-bit output passes through unshifted, low nibble intact
	storeAcc(acc, 0x1234, -0x1234, 0x7FFF)
	d.ReadAcc()
	if d.TimeoutOccurred() {
		t.Fatal("unexpected timeout")
	}
	want := Vector[int16]{X: 0x1234, Y: -0x1234, Z: 0x7FFF}
	if d.A != want {
		t.Errorf("A = %+v, want %+v", d.A, want)
	}
}

func TestReadAcc12BitShift(t *testing.T) {
	for _, dev := range []DeviceType{DeviceDLH, DeviceDLM, DeviceDLHC} {
		t.Run(dev.String(), func(t *testing.T) {
			f := newFakeTransport()
			d, acc, _ := setupDevice(t, f, dev)

			// low 4 bits are meaningless and must be discarded with the
			// sign preserved
			storeAcc(acc, 0x123F, -0x123F, -16)
			d.ReadAcc()
			want := Vector[int16]{X: 0x123F >> 4, Y: -0x123F >> 4, Z: -1}
			if d.A != want {
				t.Errorf("A = %+v, want %+v", d.A, want)
			}
		})
	}
}

func TestReadMagByteOrder(t *testing.T) {
	samples := []Vector[int16]{
		{X: 0x1234, Y: -0x2345, Z: 0x0102},
		{X: -1, Y: 0, Z: -32768},
		{X: 32767, Y: -32767, Z: 1},
	}
	for _, dev := range []DeviceType{DeviceD, DeviceDLH, DeviceDLM, DeviceDLHC} {
		t.Run(dev.String(), func(t *testing.T) {
			for _, want := range samples {
				f := newFakeTransport()
				d, _, mag := setupDevice(t, f, dev)

				storeMag(mag, magLayouts[dev], want.X, want.Y, want.Z)
				d.ReadMag()
				if d.TimeoutOccurred() {
					t.Fatal("unexpected timeout")
				}
				if d.M != want {
					t.Errorf("%v: M = %+v, want %+v", dev, d.M, want)
				}
			}
		})
	}
}

func TestReadMagStartRegister(t *testing.T) {
	// the D bursts from the low X byte with the auto-increment MSB set,
	// the others from the high X byte without it
	f := newFakeTransport()
	d, _, _ := setupDevice(t, f, DeviceD)
	d.ReadMag()
	if got := f.pointer[d.MagAddress()]; got != 0x08 {
		t.Errorf("D burst started at %#x, want 0x08", got)
	}

	f = newFakeTransport()
	d, _, _ = setupDevice(t, f, DeviceDLM)
	d.ReadMag()
	if got := f.pointer[d.MagAddress()]; got != 0x03 {
		t.Errorf("DLM burst started at %#x, want 0x03", got)
	}
}

func TestReadTimeoutLeavesSampleUntouched(t *testing.T) {
	f := newFakeTransport()
	d, acc, _ := setupDevice(t, f, DeviceDLH)
	d.SetTimeout(50)

	storeAcc(acc, 0x0100, 0x0200, 0x0300)
	d.ReadAcc()
	if d.TimeoutOccurred() {
		t.Fatal("unexpected timeout on full read")
	}
	before := d.A

	// now the bus only ever delivers 3 of the 6 bytes
	f.maxBytes = 3
	storeAcc(acc, 0x0400, 0x0500, 0x0600)
	d.ReadAcc()
	if !d.TimeoutOccurred() {
		t.Fatal("expected timeout")
	}
	if d.A != before {
		t.Errorf("A = %+v, want untouched %+v", d.A, before)
	}

	// a following full read succeeds and clears the flag
	f.maxBytes = -1
	d.ReadAcc()
	if d.TimeoutOccurred() {
		t.Error("timeout flag not cleared by successful read")
	}
	want := Vector[int16]{X: 0x0400 >> 4, Y: 0x0500 >> 4, Z: 0x0600 >> 4}
	if d.A != want {
		t.Errorf("A = %+v, want %+v", d.A, want)
	}
}

func TestMagRoundTrip(t *testing.T) {
	// decode(encode(v)) == v for each device's byte-order table
	vals := []int16{-32768, -32767, -4096, -1, 0, 1, 255, 256, 4095, 32767}
	for _, dev := range []DeviceType{DeviceD, DeviceDLH, DeviceDLM, DeviceDLHC} {
		f := newFakeTransport()
		d, _, mag := setupDevice(t, f, dev)
		for _, x := range vals {
			for _, y := range vals {
				want := Vector[int16]{X: x, Y: y, Z: x ^ y}
				storeMag(mag, magLayouts[dev], want.X, want.Y, want.Z)
				d.ReadMag()
				if d.M != want {
					t.Fatalf("%v: M = %+v, want %+v", dev, d.M, want)
				}
			}
		}
	}
}
