// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/relabs-tech/compass_computer/internal/bus"
	"github.com/relabs-tech/compass_computer/internal/compass"
	"github.com/relabs-tech/compass_computer/internal/config"
	"github.com/relabs-tech/compass_computer/internal/env"
	"github.com/relabs-tech/compass_computer/internal/lsm303"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// CompassManager owns the I2C bus and the LSM303 device and serializes
// all access to them. Producers read samples through Next, the register
// debug tool pokes registers through Read/WriteRegister.
type CompassManager struct {
	mu      sync.Mutex
	i2cBus  i2c.BusCloser
	dev     *lsm303.Device
	ready   bool
	lastErr error
}

var (
	managerInstance *CompassManager
	managerOnce     sync.Once
)

// GetCompassManager returns the shared compass manager.
func GetCompassManager() *CompassManager {
	managerOnce.Do(func() {
		managerInstance = &CompassManager{}
	})
	return managerInstance
}

// Init opens the I2C bus, detects the compass variant, and applies the
// configured defaults. Safe to call more than once; later calls reuse the
// open bus.
func (m *CompassManager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initLocked()
}

func (m *CompassManager) initLocked() error {
	cfg := config.Get()

	if m.i2cBus == nil {
		if _, err := host.Init(); err != nil {
			m.lastErr = fmt.Errorf("compass: periph host init: %w", err)
			return m.lastErr
		}
		b, err := i2creg.Open(cfg.I2CBus)
		if err != nil {
			m.lastErr = fmt.Errorf("compass: open I2C bus %q: %w", cfg.I2CBus, err)
			return m.lastErr
		}
		m.i2cBus = b
	}

	transport := bus.NewI2C(m.i2cBus)
	dev := lsm303.New(transport, lsm303.NewSystemClock())
	if !dev.Init(cfg.CompassDevice, cfg.CompassSA0) {
		m.ready = false
		m.lastErr = fmt.Errorf("compass: no LSM303 found (device=%s sa0=%s)",
			cfg.CompassDevice, cfg.CompassSA0)
		return m.lastErr
	}

	dev.SetTimeout(cfg.IOTimeoutMS)
	dev.SetCalibration(cfg.MagMin, cfg.MagMax)
	dev.EnableDefault()

	log.Printf("compass: detected LSM303%s (acc=0x%02X mag=0x%02X, timeout=%dms)",
		dev.Type(), dev.AccAddress(), dev.MagAddress(), cfg.IOTimeoutMS)
	log.Printf("compass: calibration min=(%d,%d,%d) max=(%d,%d,%d)",
		cfg.MagMin.X, cfg.MagMin.Y, cfg.MagMin.Z,
		cfg.MagMax.X, cfg.MagMax.Y, cfg.MagMax.Z)

	m.dev = dev
	m.ready = true
	m.lastErr = nil
	return nil
}

// Ready reports whether the device has been detected and enabled.
func (m *CompassManager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// DeviceType returns the detected variant name, or "none" before a
// successful Init.
func (m *CompassManager) DeviceType() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return "none"
	}
	return m.dev.Type().String()
}

// Next reads one accelerometer+magnetometer sample and computes the tilt
// compensated heading. Satisfies compass.Source.
func (m *CompassManager) Next() (compass.Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return compass.Reading{}, fmt.Errorf("compass: not initialized: %w", m.lastErr)
	}

	m.dev.Read()
	r := compass.Reading{
		Ax:       m.dev.A.X,
		Ay:       m.dev.A.Y,
		Az:       m.dev.A.Z,
		Mx:       m.dev.M.X,
		My:       m.dev.M.Y,
		Mz:       m.dev.M.Z,
		Heading:  m.dev.Heading(),
		TimedOut: m.dev.TimeoutOccurred(),
		Time:     time.Now().Format(time.RFC3339),
	}
	if r.TimedOut {
		log.Printf("compass: sample read timed out, values may be stale")
	}
	return r, nil
}

// Temperature reads the on-chip temperature sensor. Only the D and DLHC
// have one; the D reports absolute degrees, the DLHC an undocumented
// relative scale.
func (m *CompassManager) Temperature() (env.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return env.Sample{}, fmt.Errorf("compass: not initialized")
	}

	var raw int16
	var offset float64
	switch m.dev.Type() {
	case lsm303.DeviceD:
		lo := m.dev.ReadReg(lsm303.TempOutL)
		hi := m.dev.ReadReg(lsm303.TempOutH)
		// 12-bit right-justified, sign extend
		raw = int16(uint16(hi)<<8|uint16(lo)) << 4 >> 4
		offset = 25
	case lsm303.DeviceDLHC:
		hi := m.dev.ReadMagReg(lsm303.TempOutHM)
		lo := m.dev.ReadMagReg(lsm303.TempOutLM)
		// 12-bit left-justified
		raw = int16(uint16(hi)<<8|uint16(lo)) >> 4
	default:
		return env.Sample{}, fmt.Errorf("compass: LSM303%s has no temperature sensor", m.dev.Type())
	}
	if err := m.statusErr("read", 0); err != nil {
		return env.Sample{}, err
	}

	return env.Sample{
		Device:  m.dev.Type().String(),
		TempRaw: raw,
		TempC:   offset + float64(raw)/8.0,
		Time:    time.Now().Format(time.RFC3339),
	}, nil
}

// ReadRegister reads a single register. device selects the sub-device on
// split parts: "acc" for the accelerometer, anything else goes through the
// magnetometer address (the only one on the LSM303D).
func (m *CompassManager) ReadRegister(device string, addr byte) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return 0, fmt.Errorf("compass: not initialized")
	}

	var value byte
	if device == "acc" {
		value = m.dev.ReadAccReg(lsm303.RegAddr(addr))
	} else {
		value = m.dev.ReadReg(lsm303.RegAddr(addr))
	}
	if err := m.statusErr("read", addr); err != nil {
		return 0, err
	}
	return value, nil
}

// WriteRegister writes a single register, routed like ReadRegister.
func (m *CompassManager) WriteRegister(device string, addr, value byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return fmt.Errorf("compass: not initialized")
	}

	if device == "acc" {
		m.dev.WriteAccReg(lsm303.RegAddr(addr), value)
	} else {
		m.dev.WriteReg(lsm303.RegAddr(addr), value)
	}
	return m.statusErr("write", addr)
}

// ReadAllRegisters dumps the register block of the selected sub-device.
func (m *CompassManager) ReadAllRegisters(device string) (map[byte]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return nil, fmt.Errorf("compass: not initialized")
	}

	lo, hi := byte(0x00), byte(0x3F)
	if device == "mag" && m.dev.Type() != lsm303.DeviceD {
		hi = 0x0C // standalone magnetometer block ends at IRC_REG_M
	}

	regs := make(map[byte]byte)
	for addr := lo; addr <= hi; addr++ {
		var value byte
		if device == "acc" {
			value = m.dev.ReadAccReg(lsm303.RegAddr(addr))
		} else {
			value = m.dev.ReadReg(lsm303.RegAddr(addr))
		}
		if m.statusErr("read", addr) != nil {
			continue // skip registers the device NAcks
		}
		regs[addr] = value
	}
	return regs, nil
}

// Reinitialize re-runs detection and re-applies the configured defaults,
// discarding any register changes made through the debug tool.
func (m *CompassManager) Reinitialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ready = false
	m.dev = nil
	return m.initLocked()
}

// GetRegisterMap returns register metadata for the selected sub-device,
// resolved against the detected variant.
func (m *CompassManager) GetRegisterMap(device string) []RegisterInfo {
	m.mu.Lock()
	ready := m.ready
	var devType lsm303.DeviceType
	if ready {
		devType = m.dev.Type()
	}
	m.mu.Unlock()

	if ready && devType == lsm303.DeviceD {
		return getDRegisterMap()
	}
	if device == "mag" {
		return getMagRegisterMap()
	}
	return getAccRegisterMap()
}

// statusErr converts the last bus status into an error. Callers hold mu.
func (m *CompassManager) statusErr(op string, addr byte) error {
	if m.dev.LastStatus() == lsm303.StatusOK {
		return nil
	}
	return fmt.Errorf("compass: %s register 0x%02X: bus status %d", op, addr, m.dev.LastStatus())
}
