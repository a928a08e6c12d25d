package corpus

import (
	"reflect"
	"testing"

	"github.com/golang/geo/s2"
)

func TestPointToCell(t *testing.T) {
	// Create a point
	latLng := s2.LatLngFromDegrees(1.0, 2.0)

	// Create a S2 cell at level 11
	s2Cell := s2.CellIDFromLatLng(latLng).Parent(11)

	// Compare the two
	desiredCell := s2.CellID(1154732675135700992)
	if s2Cell != desiredCell {
		t.Errorf("S2 cells are not equal, got %v, want %v", s2Cell, desiredCell)
	}
}

func TestGridPoint(t *testing.T) {
	tests := []struct {
		latIdx, lonIdx, steps int
		want                  Point
	}{
		{0, 0, 30, Point{-90, -180}},
		{29, 29, 30, Point{90, 180}},
		{1, 1, 3, Point{0, 0}},
		{0, 2, 3, Point{-90, 180}},
		{2, 0, 3, Point{90, -180}},
	}
	for _, tc := range tests {
		got := GridPoint(tc.latIdx, tc.lonIdx, tc.steps)
		if got != tc.want {
			t.Errorf("GridPoint(%d, %d, %d) = %v, want %v", tc.latIdx, tc.lonIdx, tc.steps, got, tc.want)
		}
	}
}

func collect(t *testing.T, opts ConfigOpts) []Record {
	t.Helper()
	var records []Record
	err := Generate(opts, func(ch chan Record) error {
		for record := range ch {
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestGenerateRowCount(t *testing.T) {
	records := collect(t, ConfigOpts{Steps: 4})

	want := 4 * 4 * (MaxLevel + 1)
	if len(records) != want {
		t.Errorf("got %d records, want %d", len(records), want)
	}
	for _, record := range records {
		if record.Neighbors != nil {
			t.Fatal("got neighbor rows without neighbors requested")
		}
	}
}

func TestGenerateRejectsDegenerateGrid(t *testing.T) {
	discard := func(ch chan Record) error {
		for range ch {
		}
		return nil
	}
	for _, steps := range []int{-1, 0, 1} {
		if err := Generate(ConfigOpts{Steps: steps}, discard); err == nil {
			t.Errorf("Generate with steps=%d did not fail", steps)
		}
	}
}

func TestGenerateOrdering(t *testing.T) {
	records := collect(t, ConfigOpts{Steps: 3})

	i := 0
	for latIdx := 0; latIdx < 3; latIdx++ {
		for lonIdx := 0; lonIdx < 3; lonIdx++ {
			point := GridPoint(latIdx, lonIdx, 3)
			for level := 0; level <= MaxLevel; level++ {
				record := records[i]
				if record.Encode.Lat != point.Lat || record.Encode.Lon != point.Lng {
					t.Fatalf("record %d at (%v, %v), want (%v, %v)",
						i, record.Encode.Lat, record.Encode.Lon, point.Lat, point.Lng)
				}
				if record.Encode.Level != level {
					t.Fatalf("record %d at level %d, want %d", i, record.Encode.Level, level)
				}
				i++
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := ConfigOpts{Steps: 3, Neighbors: true}
	first := collect(t, opts)
	second := collect(t, opts)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same grid differ")
	}
}

func TestDecodeMatchesRequestedLevel(t *testing.T) {
	for _, record := range collect(t, ConfigOpts{Steps: 3}) {
		if record.Decode.Level != record.Encode.Level {
			t.Fatalf("cell %d decoded to level %d, want %d",
				uint64(record.Decode.Cell), record.Decode.Level, record.Encode.Level)
		}
		if record.Decode.Cell != record.Encode.Cell || record.Decode.Token != record.Encode.Token {
			t.Fatalf("decode row identity differs from encode row for cell %d", uint64(record.Encode.Cell))
		}
	}
}

// Re-encoding a decoded cell center at the same level must land back in the
// same cell, at every level including leaves.
func TestDecodedCenterReencodes(t *testing.T) {
	for _, record := range collect(t, ConfigOpts{Steps: 3}) {
		center := s2.LatLngFromDegrees(record.Decode.Lat, record.Decode.Lon)
		reencoded := s2.CellIDFromLatLng(center).Parent(record.Encode.Level)
		if reencoded != record.Encode.Cell {
			t.Fatalf("center of cell %d re-encoded to %d at level %d",
				uint64(record.Encode.Cell), uint64(reencoded), record.Encode.Level)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for _, record := range collect(t, ConfigOpts{Steps: 3}) {
		if got := s2.CellIDFromToken(record.Encode.Token); got != record.Encode.Cell {
			t.Fatalf("token %s parsed to %d, want %d",
				record.Encode.Token, uint64(got), uint64(record.Encode.Cell))
		}
	}
}

// A level-0 cell covers a whole face, so its decoded center is the face
// center, not the sample that selected it.
func TestCoarseCellDecodesToFaceCenter(t *testing.T) {
	records := collect(t, ConfigOpts{Steps: 30})

	first := records[0]
	if first.Encode.Lat != -90.0 || first.Encode.Lon != -180.0 {
		t.Fatalf("first record at (%v, %v), want (-90, -180)", first.Encode.Lat, first.Encode.Lon)
	}
	if first.Encode.Level != 0 {
		t.Fatalf("first record at level %d, want 0", first.Encode.Level)
	}
	if first.Decode.Lat == first.Encode.Lat && first.Decode.Lon == first.Encode.Lon {
		t.Error("level-0 cell decoded to the original sample instead of the face center")
	}
}

func TestNeighborRows(t *testing.T) {
	for _, record := range collect(t, ConfigOpts{Steps: 3, Neighbors: true}) {
		neighbors := record.Neighbors
		if neighbors == nil {
			t.Fatal("missing neighbor row")
		}
		if neighbors.Cell != record.Encode.Cell {
			t.Fatalf("neighbor row for cell %d, want %d", uint64(neighbors.Cell), uint64(record.Encode.Cell))
		}
		if len(neighbors.AllNeighbors) < 4 {
			t.Fatalf("cell %d has %d all-neighbors, want at least 4",
				uint64(neighbors.Cell), len(neighbors.AllNeighbors))
		}
		for _, neighbor := range neighbors.AllNeighbors {
			if neighbor.Level() != record.Encode.Level {
				t.Fatalf("neighbor %d at level %d, want %d",
					uint64(neighbor), neighbor.Level(), record.Encode.Level)
			}
		}
	}
}

func TestEdgeNeighborSymmetry(t *testing.T) {
	cells := []s2.CellID{
		s2.CellID(1154732675135700992),
		s2.CellIDFromLatLng(s2.LatLngFromDegrees(-90, -180)).Parent(0),
		s2.CellIDFromLatLng(s2.LatLngFromDegrees(45, 45)).Parent(5),
	}
	for _, cell := range cells {
		for _, neighbor := range cell.EdgeNeighbors() {
			back := neighbor.EdgeNeighbors()
			found := false
			for _, candidate := range back {
				if candidate == cell {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("cell %d missing from edge neighbors of its neighbor %d",
					uint64(cell), uint64(neighbor))
			}
		}
	}
}
