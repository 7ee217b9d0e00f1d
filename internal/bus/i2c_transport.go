// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package bus adapts a periph.io I2C bus to the transaction-style byte
// transport the lsm303 driver consumes.
package bus

import (
	"periph.io/x/conn/v3/i2c"

	"github.com/relabs-tech/compass_computer/internal/lsm303"
)

// I2CTransport implements lsm303.Transport on top of an i2c.Bus.
//
// Bytes queued between BeginTransmission and EndTransmission form one
// write transfer. A transaction of exactly one byte is a register pointer:
// it is held back so the RequestFrom that follows can issue a single
// combined write-read transfer, which is what these devices expect for a
// register read. A failed transfer leaves the read buffer empty, so probes
// see the same no-response condition a NACK produces on the wire.
type I2CTransport struct {
	bus i2c.Bus

	waddr       byte
	wbuf        []byte
	pending     []byte
	pendingAddr byte
	rbuf        []byte
	lastErr     error
}

var _ lsm303.Transport = (*I2CTransport)(nil)

// NewI2C wraps an open i2c.Bus.
func NewI2C(b i2c.Bus) *I2CTransport {
	return &I2CTransport{bus: b}
}

func (t *I2CTransport) BeginTransmission(addr byte) {
	t.waddr = addr
	t.wbuf = t.wbuf[:0]
}

func (t *I2CTransport) Write(b byte) {
	t.wbuf = append(t.wbuf, b)
}

func (t *I2CTransport) EndTransmission() byte {
	switch len(t.wbuf) {
	case 0:
		return lsm303.StatusOK
	case 1:
		// register pointer; defer it for the combined write-read
		t.pending = append(t.pending[:0], t.wbuf[0])
		t.pendingAddr = t.waddr
		return lsm303.StatusOK
	default:
		if err := t.bus.Tx(uint16(t.waddr), t.wbuf, nil); err != nil {
			t.lastErr = err
			return lsm303.StatusNAckAddr
		}
		return lsm303.StatusOK
	}
}

func (t *I2CTransport) RequestFrom(addr byte, count byte) {
	t.rbuf = t.rbuf[:0]
	var w []byte
	if t.pending != nil && t.pendingAddr == addr {
		w = t.pending
	}
	t.pending = nil

	buf := make([]byte, int(count))
	if err := t.bus.Tx(uint16(addr), w, buf); err != nil {
		t.lastErr = err
		return
	}
	t.rbuf = append(t.rbuf, buf...)
}

func (t *I2CTransport) Available() int {
	return len(t.rbuf)
}

func (t *I2CTransport) Read() byte {
	if len(t.rbuf) == 0 {
		return 0
	}
	b := t.rbuf[0]
	t.rbuf = t.rbuf[1:]
	return b
}

// Err returns the most recent transfer error, for diagnostics. The driver
// itself only looks at status codes and byte availability.
func (t *I2CTransport) Err() error {
	return t.lastErr
}
