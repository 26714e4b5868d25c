/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the dired
backend, tracking HTTP requests, directory scans, filesystem operation
batches, and system metrics.

# Features

- HTTP request metrics (latency, throughput, size)
- Scan metrics (duration, entries collected, failures)
- Operation metrics (per kind, per status)
- Batch metrics (success/partial-failure counts)
- WebSocket connection metrics
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordScan("ok", duration, len(snap.Entries))
	metrics.RecordOperation("delete", "error")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
