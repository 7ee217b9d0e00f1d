// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm303

import "time"

// Transport is the byte-level bus the driver talks through. It mirrors a
// two-wire register transaction: begin, queue bytes, end (returning a
// status code), then optionally request bytes back from the same or a
// different sub-address. The driver never opens or owns a bus; callers
// inject one and must serialize access themselves.
type Transport interface {
	BeginTransmission(addr byte)
	Write(b byte)
	EndTransmission() byte
	RequestFrom(addr byte, count byte)
	Available() int
	Read() byte
}

// Transaction status codes reported by EndTransmission.
const (
	StatusOK          byte = 0
	StatusDataTooLong byte = 1
	StatusNAckAddr    byte = 2
	StatusNAckData    byte = 3
	StatusError       byte = 4
)

// Clock supplies monotonic milliseconds for read deadlines. Wraparound is
// handled by unsigned subtraction, so a uint32 counter is sufficient.
type Clock interface {
	Millis() uint32
}

type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock backed by the runtime monotonic clock.
func NewSystemClock() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
