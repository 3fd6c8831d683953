// Package service implements the pipeline stages: ingest, profile
// derivation, corridor propagation, bottleneck detection, cause
// classification, rut aggregation and report generation.
package service

import "errors"

// Stage-ordering errors: each stage reads what an earlier stage wrote, and
// reports which run is missing instead of producing an empty result.
var (
	ErrNoSegments    = errors.New("no road segments stored: run fetch first")
	ErrNoProfiles    = errors.New("no segment profiles stored: run profile first")
	ErrNoBottlenecks = errors.New("no bottlenecks stored: run bottleneck first")
)
