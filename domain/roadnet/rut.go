package roadnet

import "sort"

// RutParcel is one fixed-length road parcel with its aggregated rut depth:
// the 90th percentile of the individual measurements falling inside it.
type RutParcel struct {
	roadNumber   int
	startMeter   float64
	endMeter     float64
	p90          float64
	measurements int
}

// NewRutParcel creates a RutParcel.
func NewRutParcel(roadNumber int, startMeter, endMeter, p90 float64, measurements int) RutParcel {
	return RutParcel{
		roadNumber:   roadNumber,
		startMeter:   startMeter,
		endMeter:     endMeter,
		p90:          p90,
		measurements: measurements,
	}
}

// RoadNumber returns the road number the parcel belongs to.
func (r RutParcel) RoadNumber() int { return r.roadNumber }

// StartMeter returns the parcel start in meters along the road.
func (r RutParcel) StartMeter() float64 { return r.startMeter }

// EndMeter returns the parcel end in meters along the road.
func (r RutParcel) EndMeter() float64 { return r.endMeter }

// P90 returns the parcel's 90th-percentile rut depth in millimeters.
func (r RutParcel) P90() float64 { return r.p90 }

// Measurements returns how many measurements landed in the parcel.
func (r RutParcel) Measurements() int { return r.measurements }

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between closest ranks. An empty input yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
