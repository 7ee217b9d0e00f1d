package lsm303

// fakeTransport scripts a bus with zero or more register devices on it.
// A write transaction sets the device's register pointer (stripping the
// auto-increment MSB) and stores any following bytes; RequestFrom serves
// consecutive registers from the pointer. Addresses with no device NACK
// and return nothing, which is what the resolver's probes key on.
type fakeTransport struct {
	devices map[byte][]byte
	pointer map[byte]byte

	waddr byte
	wbuf  []byte
	rbuf  []byte

	// maxBytes < 0 means unlimited; otherwise RequestFrom delivers at
	// most this many bytes, for timeout tests.
	maxBytes int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		devices:  make(map[byte][]byte),
		pointer:  make(map[byte]byte),
		maxBytes: -1,
	}
}

// addDevice attaches a device with a blank 256-byte register file and
// returns the file for the test to fill in.
func (f *fakeTransport) addDevice(addr byte) []byte {
	regs := make([]byte, 256)
	f.devices[addr] = regs
	return regs
}

func (f *fakeTransport) BeginTransmission(addr byte) {
	f.waddr = addr
	f.wbuf = f.wbuf[:0]
}

func (f *fakeTransport) Write(b byte) {
	f.wbuf = append(f.wbuf, b)
}

func (f *fakeTransport) EndTransmission() byte {
	regs, ok := f.devices[f.waddr]
	if !ok {
		return StatusNAckAddr
	}
	if len(f.wbuf) > 0 {
		p := f.wbuf[0] &^ 0x80
		f.pointer[f.waddr] = p
		for i, v := range f.wbuf[1:] {
			regs[int(p)+i] = v
		}
	}
	return StatusOK
}

func (f *fakeTransport) RequestFrom(addr byte, count byte) {
	f.rbuf = f.rbuf[:0]
	regs, ok := f.devices[addr]
	if !ok {
		return
	}
	p := int(f.pointer[addr])
	for i := 0; i < int(count); i++ {
		f.rbuf = append(f.rbuf, regs[(p+i)%256])
	}
	if f.maxBytes >= 0 && len(f.rbuf) > f.maxBytes {
		f.rbuf = f.rbuf[:f.maxBytes]
	}
}

func (f *fakeTransport) Available() int { return len(f.rbuf) }

func (f *fakeTransport) Read() byte {
	if len(f.rbuf) == 0 {
		return 0
	}
	b := f.rbuf[0]
	f.rbuf = f.rbuf[1:]
	return b
}

// fakeClock advances 10 ms per query so deadline loops terminate.
type fakeClock struct {
	now uint32
}

func (c *fakeClock) Millis() uint32 {
	c.now += 10
	return c.now
}
