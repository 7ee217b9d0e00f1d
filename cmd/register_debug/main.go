// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"
	"net/http"

	"github.com/relabs-tech/compass_computer/internal/app"
	"github.com/relabs-tech/compass_computer/internal/config"
	"github.com/relabs-tech/compass_computer/internal/sensors"
)

func main() {
	log.Println("starting LSM303 register debug tool (standalone)")

	if err := config.InitGlobal("compass_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Println("Initializing compass manager...")
	mgr := sensors.GetCompassManager()
	if err := mgr.Init(); err != nil {
		log.Printf("Warning: compass initialization had issues: %v", err)
		log.Println("Continuing anyway - use the init action to retry detection")
	} else {
		log.Printf("Detected LSM303%s", mgr.DeviceType())
	}

	http.HandleFunc("/ws", app.HandleRegisterDebugWS)

	// API endpoints for live compass data and chip temperature
	http.HandleFunc("/api/compass", app.HandleCompassData)
	http.HandleFunc("/api/temperature", app.HandleTemperature)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/register_debug.html")
	})

	addr := ":8081"
	log.Printf("Register debug tool listening on %s", addr)
	log.Printf("Open http://localhost:8081 in your browser")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
