// Copyright (c) 2025, The Tally Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricStatusSuccess = "success"
	metricStatusError   = "error"
)

var (
	// Run-log parse metrics
	parseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tally_parse_duration_seconds",
			Help:    "Duration of run-log parsing in seconds",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 15},
		},
	)
	parsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tally_parse_total",
			Help: "Total number of run-log parses by outcome",
		},
		[]string{"status"},
	)
	recordsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tally_parse_records_total",
			Help: "Total number of run-log records consumed by kind",
		},
		[]string{"kind"},
	)
	lastRunTests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tally_parse_last_run_tests",
			Help: "Total test count of the most recently parsed run log",
		},
	)
)
