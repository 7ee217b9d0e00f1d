// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package app

import (
	"fmt"
	"time"

	"github.com/relabs-tech/compass_computer/internal/compass"
)

func RunMockConsole() error {
	src := compass.NewMockSource()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		r, err := src.Next()
		if err != nil {
			return err
		}

		fmt.Printf(
			"HDG=%6.1f  mx=%6d my=%6d mz=%6d\n",
			r.Heading,
			r.Mx,
			r.My,
			r.Mz,
		)
	}
	return nil
}
