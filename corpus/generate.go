package corpus

import (
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/sirupsen/logrus"
)

type ConfigOpts struct {
	Steps     int
	Neighbors bool
}

// Sink consumes generated records until the channel closes. Writers in
// corpusio satisfy this.
type Sink func(records chan Record) error

// GridPoint maps grid indices to degrees. Both axes include their
// endpoints, so latitude spans [-90, 90] and longitude [-180, 180].
func GridPoint(latIdx, lonIdx, steps int) Point {
	lat := (float64(latIdx)/float64(steps-1))*180.0 - 90.0
	lng := (float64(lonIdx)/float64(steps-1))*360.0 - 180.0
	return Point{lat, lng}
}

// Generate enumerates a steps×steps lat/lon grid and, for every sample and
// every level 0..MaxLevel, streams one Record to the sink. Order is
// deterministic: latitude index outermost, then longitude index, then level,
// all ascending.
func Generate(opts ConfigOpts, sink Sink) error {
	if opts.Steps < 2 {
		return fmt.Errorf("steps must be >= 2, got %d", opts.Steps)
	}
	logrus.Debugf("Generating corpus with steps=%d neighbors=%v", opts.Steps, opts.Neighbors)

	records := make(chan Record, 1024)
	go func() {
		defer close(records)
		for latIdx := 0; latIdx < opts.Steps; latIdx++ {
			for lonIdx := 0; lonIdx < opts.Steps; lonIdx++ {
				point := GridPoint(latIdx, lonIdx, opts.Steps)
				leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(point.Lat, point.Lng))
				for level := 0; level <= MaxLevel; level++ {
					records <- recordAt(point, leaf, level, opts.Neighbors)
				}
			}
		}
	}()
	return sink(records)
}

func recordAt(point Point, leaf s2.CellID, level int, withNeighbors bool) Record {
	cell := leaf.Parent(level)
	token := cell.ToToken()
	decoded := cell.LatLng()

	record := Record{
		Encode: EncodeRow{
			Lat:   point.Lat,
			Lon:   point.Lng,
			Level: level,
			Cell:  cell,
			Token: token,
		},
		Decode: DecodeRow{
			Cell:  cell,
			Token: token,
			Lat:   decoded.Lat.Degrees(),
			Lon:   decoded.Lng.Degrees(),
			Level: cell.Level(),
		},
	}
	if withNeighbors {
		record.Neighbors = &NeighborRow{
			Cell:          cell,
			EdgeNeighbors: cell.EdgeNeighbors(),
			AllNeighbors:  cell.AllNeighbors(level),
		}
	}
	return record
}
