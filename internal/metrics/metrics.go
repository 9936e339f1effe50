// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics provides Prometheus metrics for the bot's diagnostics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// No unit IDs or frame numbers in labels; both are unbounded.

var (
	// Counters

	// FramesTotal counts game frames seen by the tick hook, by team.
	FramesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kpai_frames_total",
		Help: "Total number of game frames handled, by team.",
	}, []string{"team"})

	// StatusDumpsTotal counts status dumps by outcome (written/failed).
	StatusDumpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kpai_status_dumps_total",
		Help: "Total number of status dumps, by outcome.",
	}, []string{"outcome"})

	// ConfigLoadsTotal counts configuration table builds by outcome (ok/error).
	ConfigLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kpai_config_loads_total",
		Help: "Total number of configuration table builds, by outcome.",
	}, []string{"outcome"})

	// ConfigOptionsRejectedTotal counts unknown override keys skipped in lenient mode.
	ConfigOptionsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kpai_config_options_rejected_total",
		Help: "Total number of unknown tuning options ignored by lenient loads.",
	})

	// Gauges

	// CompressionAvailable is 1 when the status compressor initialised.
	CompressionAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kpai_compression_available",
		Help: "Whether status dump compression is available (1) or not (0).",
	})

	// UnitsSeen tracks the unit counts of the last status dump, by side.
	UnitsSeen = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kpai_units_seen",
		Help: "Units enumerated by the last status dump, by side (friendly/enemy).",
	}, []string{"side"})
)

// RecordFrame increments the frame counter for team.
func RecordFrame(team int) {
	FramesTotal.WithLabelValues(strconv.Itoa(team)).Inc()
}

// RecordStatusDump records the outcome of one status dump.
func RecordStatusDump(err error) {
	StatusDumpsTotal.WithLabelValues(outcome(err, "written", "failed")).Inc()
}

// RecordConfigLoad records the outcome of one configuration build.
func RecordConfigLoad(err error) {
	ConfigLoadsTotal.WithLabelValues(outcome(err, "ok", "error")).Inc()
}

// RecordRejectedOption counts one ignored unknown option.
func RecordRejectedOption() {
	ConfigOptionsRejectedTotal.Inc()
}

// SetCompressionAvailable publishes the compression probe result.
func SetCompressionAvailable(ok bool) {
	if ok {
		CompressionAvailable.Set(1)
		return
	}
	CompressionAvailable.Set(0)
}

// SetUnitsSeen publishes the unit counts of a status dump.
func SetUnitsSeen(friendly, enemy int) {
	UnitsSeen.WithLabelValues("friendly").Set(float64(friendly))
	UnitsSeen.WithLabelValues("enemy").Set(float64(enemy))
}

func outcome(err error, ok, failed string) string {
	if err != nil {
		return failed
	}
	return ok
}
