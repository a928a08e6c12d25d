package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// MaxLevel is the finest S2 subdivision level; leaf cells live here.
const MaxLevel = 30

type Point struct {
	Lat float64
	Lng float64
}

type EncodeRow struct {
	Lat   float64
	Lon   float64
	Level int
	Cell  s2.CellID
	Token string
}

type DecodeRow struct {
	Cell  s2.CellID
	Token string
	Lat   float64
	Lon   float64
	Level int
}

type NeighborRow struct {
	Cell          s2.CellID
	EdgeNeighbors [4]s2.CellID
	AllNeighbors  []s2.CellID
}

// Record holds every row derived from one (grid point, level) iteration.
// Neighbors is nil unless the neighbor corpus was requested.
type Record struct {
	Encode    EncodeRow
	Decode    DecodeRow
	Neighbors *NeighborRow
}

func (r EncodeRow) String() string {
	return fmt.Sprintf("%s,%s,%d,%d,%s",
		formatDouble(r.Lat), formatDouble(r.Lon), r.Level, uint64(r.Cell), r.Token)
}

func (r DecodeRow) String() string {
	return fmt.Sprintf("%d,%s,%s,%s,%d",
		uint64(r.Cell), r.Token, formatDouble(r.Lat), formatDouble(r.Lon), r.Level)
}

func (r NeighborRow) String() string {
	return fmt.Sprintf("%d,%s,%s", uint64(r.Cell), r.EdgeField(), r.AllField())
}

// EdgeField is the colon-joined list of the four edge-adjacent cell IDs.
func (r NeighborRow) EdgeField() string {
	return joinCells(r.EdgeNeighbors[:])
}

// AllField is the colon-joined list of all (edge and corner) neighbor IDs.
func (r NeighborRow) AllField() string {
	return joinCells(r.AllNeighbors)
}

// 17 significant digits round-trips an IEEE-754 double exactly, matching
// the precision the reference corpus is written with.
func formatDouble(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

func joinCells(cells []s2.CellID) string {
	ids := make([]string, len(cells))
	for i, cell := range cells {
		ids[i] = strconv.FormatUint(uint64(cell), 10)
	}
	return strings.Join(ids, ":")
}
