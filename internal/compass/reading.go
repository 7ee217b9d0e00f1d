package compass

// Reading is a single decoded accelerometer/magnetometer sample with the
// heading derived from it.
type Reading struct {
	Ax int16 `json:"ax"` // accel
	Ay int16 `json:"ay"`
	Az int16 `json:"az"`

	Mx int16 `json:"mx"` // magnetometer
	My int16 `json:"my"`
	Mz int16 `json:"mz"`

	// Heading is degrees clockwise from magnetic north, [0, 360).
	Heading float64 `json:"heading"`

	// TimedOut marks a sample whose vectors are stale because the bus
	// read hit its deadline.
	TimedOut bool `json:"timed_out,omitempty"`

	Time string `json:"time"` // RFC3339
}

// Source is anything that can provide compass readings over time:
// the real sensor, a mock, maybe a replay source from file later.
type Source interface {
	Next() (Reading, error)
}
