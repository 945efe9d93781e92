// Package config provides application configuration loaded from
// environment variables (YM_ prefix) with an optional YAML file overlay.
//
// Configuration covers logging, spatial weight construction, Monte Carlo
// significance testing, shock detection thresholds, and the bounded
// weights cache. Defaults are declared on the struct tags so a zero
// environment yields a working configuration.
package config
