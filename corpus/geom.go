package corpus

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// CellWKT renders a cell's four vertices as a closed WKT polygon.
func CellWKT(cellID s2.CellID) string {
	cell := s2.CellFromCellID(cellID)
	wkt := "POLYGON(("
	for k := 0; k < 4; k++ {
		latlng := s2.LatLngFromPoint(cell.Vertex(k))
		wkt += fmt.Sprintf("%v %v, ", latlng.Lng.Degrees(), latlng.Lat.Degrees())
	}
	closingPoint := s2.LatLngFromPoint(cell.Vertex(0))
	wkt += fmt.Sprintf("%v %v))", closingPoint.Lng.Degrees(), closingPoint.Lat.Degrees())

	return wkt
}
