// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

// RegisterInfo provides register names, descriptions, access types, and
// bit field definitions for the register debug UI.
type RegisterInfo struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"`
	Default     string     `json:"default,omitempty"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

// BitField describes one field inside a register.
type BitField struct {
	Bits        string `json:"bits"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// getAccRegisterMap returns metadata for the DLH/DLM/DLHC accelerometer
// register block.
func getAccRegisterMap() []RegisterInfo {
	return []RegisterInfo{
		{Address: "0x20", Name: "CTRL_REG1_A", Description: "Power mode and data rate", Access: "RW", Default: "0x07",
			BitFields: []BitField{
				{Bits: "7:5", Name: "PM", Description: "Power mode", Values: "0=Power down, 1=Normal, 2-5=Low power ODR"},
				{Bits: "4:3", Name: "DR", Description: "Data rate (normal mode)", Values: "0=50Hz, 1=100Hz, 2=400Hz, 3=1000Hz"},
				{Bits: "2", Name: "Zen", Description: "Z axis enable", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "Yen", Description: "Y axis enable", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "Xen", Description: "X axis enable", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x21", Name: "CTRL_REG2_A", Description: "High-pass filter configuration", Access: "RW", Default: "0x00"},
		{Address: "0x22", Name: "CTRL_REG3_A", Description: "Interrupt pin control", Access: "RW", Default: "0x00"},
		{Address: "0x23", Name: "CTRL_REG4_A", Description: "Block data update, scale, resolution", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "BDU", Description: "Block data update", Values: "0=Continuous, 1=Output registers locked until read"},
				{Bits: "6", Name: "BLE", Description: "Big/little endian", Values: "0=LSB at lower address"},
				{Bits: "5:4", Name: "FS", Description: "Full scale", Values: "0=±2g, 1=±4g, 3=±8g (DLHC: 2=±8g, 3=±16g)"},
				{Bits: "3", Name: "HR", Description: "High resolution mode (DLHC)", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x24", Name: "CTRL_REG5_A", Description: "Sleep-to-wake, FIFO enable", Access: "RW", Default: "0x00"},
		{Address: "0x27", Name: "STATUS_REG_A", Description: "Axis data available/overrun flags", Access: "R",
			BitFields: []BitField{
				{Bits: "7", Name: "ZYXOR", Description: "X, Y and Z axis data overrun"},
				{Bits: "3", Name: "ZYXDA", Description: "X, Y and Z axis new data available"},
			}},
		{Address: "0x28", Name: "OUT_X_L_A", Description: "Accelerometer X low byte", Access: "R"},
		{Address: "0x29", Name: "OUT_X_H_A", Description: "Accelerometer X high byte", Access: "R"},
		{Address: "0x2A", Name: "OUT_Y_L_A", Description: "Accelerometer Y low byte", Access: "R"},
		{Address: "0x2B", Name: "OUT_Y_H_A", Description: "Accelerometer Y high byte", Access: "R"},
		{Address: "0x2C", Name: "OUT_Z_L_A", Description: "Accelerometer Z low byte", Access: "R"},
		{Address: "0x2D", Name: "OUT_Z_H_A", Description: "Accelerometer Z high byte", Access: "R"},
	}
}

// getMagRegisterMap returns metadata for the DLH/DLM/DLHC magnetometer
// register block. The axis output order between 0x03 and 0x08 depends on
// the device (DLH: X,Y,Z; DLM/DLHC: X,Z,Y).
func getMagRegisterMap() []RegisterInfo {
	return []RegisterInfo{
		{Address: "0x00", Name: "CRA_REG_M", Description: "Output data rate", Access: "RW", Default: "0x10",
			BitFields: []BitField{
				{Bits: "4:2", Name: "DO", Description: "Data output rate", Values: "0=0.75Hz ... 4=15Hz ... 6=75Hz"},
			}},
		{Address: "0x01", Name: "CRB_REG_M", Description: "Gain setting", Access: "RW", Default: "0x20",
			BitFields: []BitField{
				{Bits: "7:5", Name: "GN", Description: "Gain", Values: "1=±1.3 gauss ... 7=±8.1 gauss"},
			}},
		{Address: "0x02", Name: "MR_REG_M", Description: "Operating mode", Access: "RW", Default: "0x03",
			BitFields: []BitField{
				{Bits: "1:0", Name: "MD", Description: "Mode", Values: "0=Continuous, 1=Single, 2/3=Sleep"},
			}},
		{Address: "0x03", Name: "OUT_M_FIRST", Description: "First magnetometer output byte (X high)", Access: "R"},
		{Address: "0x09", Name: "SR_REG_M", Description: "Data ready/lock status", Access: "R",
			BitFields: []BitField{
				{Bits: "1", Name: "LOCK", Description: "Data output register lock"},
				{Bits: "0", Name: "DRDY", Description: "Data ready"},
			}},
		{Address: "0x0A", Name: "IRA_REG_M", Description: "Identification register A ('H')", Access: "R", Default: "0x48"},
		{Address: "0x0B", Name: "IRB_REG_M", Description: "Identification register B ('4')", Access: "R", Default: "0x34"},
		{Address: "0x0C", Name: "IRC_REG_M", Description: "Identification register C ('3')", Access: "R", Default: "0x33"},
		{Address: "0x31", Name: "TEMP_OUT_H_M", Description: "Temperature high byte (DLHC)", Access: "R"},
		{Address: "0x32", Name: "TEMP_OUT_L_M", Description: "Temperature low byte (DLHC)", Access: "R"},
	}
}

// getDRegisterMap returns metadata for the LSM303D, which exposes both
// sub-devices behind a single register map.
func getDRegisterMap() []RegisterInfo {
	return []RegisterInfo{
		{Address: "0x05", Name: "TEMP_OUT_L", Description: "Temperature low byte", Access: "R"},
		{Address: "0x06", Name: "TEMP_OUT_H", Description: "Temperature high byte", Access: "R"},
		{Address: "0x07", Name: "STATUS_M", Description: "Magnetometer status", Access: "R"},
		{Address: "0x08", Name: "OUT_X_L_M", Description: "Magnetometer X low byte", Access: "R"},
		{Address: "0x09", Name: "OUT_X_H_M", Description: "Magnetometer X high byte", Access: "R"},
		{Address: "0x0A", Name: "OUT_Y_L_M", Description: "Magnetometer Y low byte", Access: "R"},
		{Address: "0x0B", Name: "OUT_Y_H_M", Description: "Magnetometer Y high byte", Access: "R"},
		{Address: "0x0C", Name: "OUT_Z_L_M", Description: "Magnetometer Z low byte", Access: "R"},
		{Address: "0x0D", Name: "OUT_Z_H_M", Description: "Magnetometer Z high byte", Access: "R"},
		{Address: "0x0F", Name: "WHO_AM_I", Description: "Device ID (should be 0x49)", Access: "R", Default: "0x49"},
		{Address: "0x1F", Name: "CTRL0", Description: "FIFO and high-pass filter control", Access: "RW", Default: "0x00"},
		{Address: "0x20", Name: "CTRL1", Description: "Accelerometer data rate and axis enables", Access: "RW", Default: "0x07",
			BitFields: []BitField{
				{Bits: "7:4", Name: "AODR", Description: "Accelerometer data rate", Values: "0=Power down, 1=3.125Hz ... 5=50Hz ... 10=1600Hz"},
				{Bits: "3", Name: "BDU", Description: "Block data update", Values: "0=Continuous, 1=Locked until read"},
				{Bits: "2", Name: "AZEN", Description: "Accel Z enable"},
				{Bits: "1", Name: "AYEN", Description: "Accel Y enable"},
				{Bits: "0", Name: "AXEN", Description: "Accel X enable"},
			}},
		{Address: "0x21", Name: "CTRL2", Description: "Accelerometer anti-alias filter and full scale", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "5:3", Name: "AFS", Description: "Accelerometer full scale", Values: "0=±2g, 1=±4g, 2=±6g, 3=±8g, 4=±16g"},
			}},
		{Address: "0x24", Name: "CTRL5", Description: "Magnetometer resolution and data rate", Access: "RW", Default: "0x18",
			BitFields: []BitField{
				{Bits: "7", Name: "TEMP_EN", Description: "Temperature sensor enable"},
				{Bits: "6:5", Name: "M_RES", Description: "Magnetic resolution", Values: "0=Low, 3=High"},
				{Bits: "4:2", Name: "M_ODR", Description: "Magnetometer data rate", Values: "0=3.125Hz ... 4=50Hz"},
			}},
		{Address: "0x25", Name: "CTRL6", Description: "Magnetometer full scale", Access: "RW", Default: "0x20",
			BitFields: []BitField{
				{Bits: "6:5", Name: "MFS", Description: "Magnetic full scale", Values: "0=±2 gauss, 1=±4, 2=±8, 3=±12"},
			}},
		{Address: "0x26", Name: "CTRL7", Description: "Magnetometer mode, filters", Access: "RW", Default: "0x01",
			BitFields: []BitField{
				{Bits: "1:0", Name: "MD", Description: "Magnetic sensor mode", Values: "0=Continuous, 1=Single, 2/3=Power down"},
			}},
		{Address: "0x27", Name: "STATUS_A", Description: "Accelerometer status", Access: "R"},
		{Address: "0x28", Name: "OUT_X_L_A", Description: "Accelerometer X low byte", Access: "R"},
		{Address: "0x29", Name: "OUT_X_H_A", Description: "Accelerometer X high byte", Access: "R"},
		{Address: "0x2A", Name: "OUT_Y_L_A", Description: "Accelerometer Y low byte", Access: "R"},
		{Address: "0x2B", Name: "OUT_Y_H_A", Description: "Accelerometer Y high byte", Access: "R"},
		{Address: "0x2C", Name: "OUT_Z_L_A", Description: "Accelerometer Z low byte", Access: "R"},
		{Address: "0x2D", Name: "OUT_Z_H_A", Description: "Accelerometer Z high byte", Access: "R"},
	}
}
