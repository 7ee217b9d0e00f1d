package env

// Sample represents a single temperature measurement from the compass chip.
// Only the D and DLHC carry the sensor. The DLHC does not document an
// offset for its reading, so Celsius is relative on that part.
type Sample struct {
	Device string `json:"device"` // detected variant, e.g. "D"

	TempRaw int16   `json:"temp_raw"` // 12-bit signed, 8 LSB per °C
	TempC   float64 `json:"temp_c"`
	Time    string  `json:"time"` // RFC3339
}
