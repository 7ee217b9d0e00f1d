// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package compass

import (
	"math"
	"time"
)

type mockSource struct {
	start time.Time
}

// NewMockSource creates a mock compass source that sweeps the heading
// smoothly through the full circle, for development without hardware.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

func (m *mockSource) Next() (Reading, error) {
	elapsed := time.Since(m.start).Seconds()
	heading := math.Mod(elapsed*20, 360)
	rad := heading * math.Pi / 180

	return Reading{
		Ax:      0,
		Ay:      0,
		Az:      1024,
		Mx:      int16(400 * math.Sin(rad)),
		My:      int16(-400 * math.Cos(rad)),
		Mz:      -120,
		Heading: heading,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}
