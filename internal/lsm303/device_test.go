package lsm303

import "testing"

func TestInitAutoDetect(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(f *fakeTransport)
		ok      bool
		device  DeviceType
		sa0     SA0State
		accAddr byte
		magAddr byte
	}{
		{
			name: "D with SA0 high",
			setup: func(f *fakeTransport) {
				regs := f.addDevice(DSA0HighAddress)
				regs[WhoAmI] = DWhoID
			},
			ok: true, device: DeviceD, sa0: SA0High,
			accAddr: DSA0HighAddress, magAddr: DSA0HighAddress,
		},
		{
			name: "D with SA0 low",
			setup: func(f *fakeTransport) {
				regs := f.addDevice(DSA0LowAddress)
				regs[WhoAmI] = DWhoID
			},
			ok: true, device: DeviceD, sa0: SA0Low,
			accAddr: DSA0LowAddress, magAddr: DSA0LowAddress,
		},
		{
			name: "DLM via WHO_AM_I, SA0 resolved high",
			setup: func(f *fakeTransport) {
				regs := f.addDevice(NonDMagAddress)
				regs[WhoAmI] = DLMWhoID
				f.addDevice(NonDAccSA0HighAddress)
			},
			ok: true, device: DeviceDLM, sa0: SA0High,
			accAddr: NonDAccSA0HighAddress, magAddr: NonDMagAddress,
		},
		{
			name: "DLM via WHO_AM_I, SA0 resolved low",
			setup: func(f *fakeTransport) {
				regs := f.addDevice(NonDMagAddress)
				regs[WhoAmI] = DLMWhoID
				f.addDevice(NonDAccSA0LowAddress)
			},
			ok: true, device: DeviceDLM, sa0: SA0Low,
			accAddr: NonDAccSA0LowAddress, magAddr: NonDMagAddress,
		},
		{
			name: "DLHC guessed from SA0-high accelerometer address",
			setup: func(f *fakeTransport) {
				// magnetometer answers the WHO_AM_I probe with garbage
				f.addDevice(NonDMagAddress)
				f.addDevice(NonDAccSA0HighAddress)
			},
			ok: true, device: DeviceDLHC, sa0: SA0High,
			accAddr: NonDAccSA0HighAddress, magAddr: NonDMagAddress,
		},
		{
			name: "DLH guessed from SA0-low accelerometer address",
			setup: func(f *fakeTransport) {
				f.addDevice(NonDMagAddress)
				f.addDevice(NonDAccSA0LowAddress)
			},
			ok: true, device: DeviceDLH, sa0: SA0Low,
			accAddr: NonDAccSA0LowAddress, magAddr: NonDMagAddress,
		},
		{
			name:  "nothing attached",
			setup: func(f *fakeTransport) {},
			ok:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeTransport()
			tc.setup(f)
			d := New(f, &fakeClock{})

			ok := d.Init(DeviceAuto, SA0Auto)
			if ok != tc.ok {
				t.Fatalf("Init = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if d.Type() != tc.device {
				t.Errorf("device = %v, want %v", d.Type(), tc.device)
			}
			if d.SA0() != tc.sa0 {
				t.Errorf("sa0 = %v, want %v", d.SA0(), tc.sa0)
			}
			if d.AccAddress() != tc.accAddr {
				t.Errorf("acc address = %#x, want %#x", d.AccAddress(), tc.accAddr)
			}
			if d.MagAddress() != tc.magAddr {
				t.Errorf("mag address = %#x, want %#x", d.MagAddress(), tc.magAddr)
			}
		})
	}
}

func TestInitKnownDeviceAutoSA0(t *testing.T) {
	t.Run("D re-probed on both addresses", func(t *testing.T) {
		f := newFakeTransport()
		regs := f.addDevice(DSA0LowAddress)
		regs[WhoAmI] = DWhoID
		d := New(f, &fakeClock{})

		if !d.Init(DeviceD, SA0Auto) {
			t.Fatal("Init failed")
		}
		if d.SA0() != SA0Low {
			t.Errorf("sa0 = %v, want low", d.SA0())
		}
	})

	t.Run("DLH probed on accelerometer addresses", func(t *testing.T) {
		f := newFakeTransport()
		f.addDevice(NonDAccSA0HighAddress)
		d := New(f, &fakeClock{})

		if !d.Init(DeviceDLH, SA0Auto) {
			t.Fatal("Init failed")
		}
		if d.SA0() != SA0High {
			t.Errorf("sa0 = %v, want high", d.SA0())
		}
		if d.AccAddress() != NonDAccSA0HighAddress {
			t.Errorf("acc address = %#x", d.AccAddress())
		}
	})

	t.Run("no response on either address fails", func(t *testing.T) {
		f := newFakeTransport()
		d := New(f, &fakeClock{})
		if d.Init(DeviceDLM, SA0Auto) {
			t.Fatal("Init succeeded with no device attached")
		}
	})
}

func TestTranslateMagReg(t *testing.T) {
	logical := []RegAddr{OutXHM, OutXLM, OutYHM, OutYLM, OutZHM, OutZLM}
	want := map[DeviceType][]RegAddr{
		DeviceD:    {0x09, 0x08, 0x0B, 0x0A, 0x0D, 0x0C},
		DeviceDLH:  {0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		DeviceDLM:  {0x03, 0x04, 0x07, 0x08, 0x05, 0x06},
		DeviceDLHC: {0x03, 0x04, 0x07, 0x08, 0x05, 0x06},
	}

	for dev, regs := range want {
		d := &Device{device: dev, layout: magLayouts[dev]}
		for i, lr := range logical {
			if got := d.translateMagReg(lr); got != regs[i] {
				t.Errorf("%v: translate(%d) = %#x, want %#x", dev, lr, got, regs[i])
			}
		}
	}
}

func TestTranslatePhysicalPassThrough(t *testing.T) {
	d := &Device{device: DeviceDLH, layout: magLayouts[DeviceDLH]}
	if got := d.translateMagReg(CraRegM); got != CraRegM {
		t.Errorf("translate(CraRegM) = %#x, want %#x", got, CraRegM)
	}
}

// Generic register access always goes through the magnetometer
// sub-address, even on split devices where the accelerometer has the same
// register number.
func TestReadWriteRegRoutesToMag(t *testing.T) {
	f := newFakeTransport()
	magRegs := f.addDevice(NonDMagAddress)
	accRegs := f.addDevice(NonDAccSA0LowAddress)
	d := New(f, &fakeClock{})
	if !d.Init(DeviceDLH, SA0Low) {
		t.Fatal("Init failed")
	}

	magRegs[0x20] = 0xAA
	accRegs[0x20] = 0x55
	if got := d.ReadReg(0x20); got != 0xAA {
		t.Errorf("ReadReg(0x20) = %#x, want magnetometer value 0xAA", got)
	}

	d.WriteReg(CraRegM, 0x14)
	if magRegs[CraRegM] != 0x14 {
		t.Errorf("WriteReg did not reach magnetometer register file")
	}
	if accRegs[CraRegM] == 0x14 {
		t.Errorf("WriteReg leaked to accelerometer register file")
	}
}

func TestEnableDefault(t *testing.T) {
	t.Run("D", func(t *testing.T) {
		f := newFakeTransport()
		regs := f.addDevice(DSA0HighAddress)
		regs[WhoAmI] = DWhoID
		d := New(f, &fakeClock{})
		if !d.Init(DeviceAuto, SA0Auto) {
			t.Fatal("Init failed")
		}
		d.EnableDefault()
		if regs[Ctrl1] != 0x57 {
			t.Errorf("CTRL1 = %#x, want 0x57", regs[Ctrl1])
		}
		if regs[Ctrl7] != 0x00 {
			t.Errorf("CTRL7 = %#x, want 0x00", regs[Ctrl7])
		}
		if regs[Ctrl5] != 0x70 {
			t.Errorf("CTRL5 = %#x, want 0x70", regs[Ctrl5])
		}
	})

	t.Run("DLHC", func(t *testing.T) {
		f := newFakeTransport()
		magRegs := f.addDevice(NonDMagAddress)
		accRegs := f.addDevice(NonDAccSA0HighAddress)
		d := New(f, &fakeClock{})
		if !d.Init(DeviceAuto, SA0Auto) {
			t.Fatal("Init failed")
		}
		d.EnableDefault()
		if accRegs[CtrlReg1A] != 0x27 {
			t.Errorf("CTRL_REG1_A = %#x, want 0x27", accRegs[CtrlReg1A])
		}
		if accRegs[CtrlReg4A] != 0x08 {
			t.Errorf("CTRL_REG4_A = %#x, want 0x08", accRegs[CtrlReg4A])
		}
		if magRegs[MrRegM] != 0x00 {
			t.Errorf("MR_REG_M = %#x, want 0x00", magRegs[MrRegM])
		}
	})
}

func TestLastStatusRecordsNAck(t *testing.T) {
	f := newFakeTransport()
	d := New(f, &fakeClock{})
	d.Init(DeviceAuto, SA0Auto) // nothing attached, every probe NACKs
	if d.LastStatus() != StatusNAckAddr {
		t.Errorf("LastStatus = %d, want %d", d.LastStatus(), StatusNAckAddr)
	}
}
