// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/relabs-tech/compass_computer/internal/config"
	"github.com/relabs-tech/compass_computer/internal/sensors"
)

// headingPayload is the compact heading-only message published alongside
// the full reading.
type headingPayload struct {
	Heading  float64 `json:"heading"`
	TimedOut bool    `json:"timed_out,omitempty"`
	Time     string  `json:"time"`
}

// RunCompassProducer samples the compass on a fixed interval and publishes
// the full reading and the derived heading over MQTT.
func RunCompassProducer() error {
	log.Println("starting compass producer")

	cfg := config.Get()

	mgr := sensors.GetCompassManager()
	if err := mgr.Init(); err != nil {
		log.Printf("compass producer: init failed: %v", err)
		return err
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Printf("compass producer: MQTT connect error: %v", token.Error())
		return token.Error()
	}
	defer client.Disconnect(250)

	log.Printf("connected to MQTT %s, publishing every %dms", cfg.MQTTBroker, cfg.SampleInterval)

	ticker := time.NewTicker(time.Duration(cfg.SampleInterval) * time.Millisecond)
	defer ticker.Stop()

	timeouts := 0
	for t := range ticker.C {
		reading, err := mgr.Next()
		if err != nil {
			log.Printf("compass producer: read error: %v", err)
			continue
		}
		if reading.TimedOut {
			timeouts++
		}

		payload, err := json.Marshal(reading)
		if err != nil {
			log.Printf("compass producer: reading marshal error: %v", err)
			continue
		}
		if token := client.Publish(cfg.TopicReading, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("compass producer: MQTT publish error (%s): %v", cfg.TopicReading, token.Error())
			continue
		}

		hp := headingPayload{
			Heading:  reading.Heading,
			TimedOut: reading.TimedOut,
			Time:     reading.Time,
		}
		if payload, err := json.Marshal(hp); err != nil {
			log.Printf("compass producer: heading marshal error: %v", err)
		} else if token := client.Publish(cfg.TopicHeading, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("compass producer: MQTT publish error (%s): %v", cfg.TopicHeading, token.Error())
		}

		log.Printf("%s tick: heading=%.1f° | accel ax=%d ay=%d az=%d | mag mx=%d my=%d mz=%d | timeouts=%d",
			t.Format(time.RFC3339),
			reading.Heading,
			reading.Ax, reading.Ay, reading.Az,
			reading.Mx, reading.My, reading.Mz,
			timeouts,
		)
	}
	return nil
}
