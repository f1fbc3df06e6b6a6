package cluster

import "math"

// spatialIndex is a regular grid over the plane, cell side equal to eps, used
// to accelerate neighborhood queries to the 3x3 block of cells around a
// point instead of a full O(n) scan.
type spatialIndex struct {
	cellSize float64
	cells    map[cellKey][]int // cell -> point indices
}

type cellKey struct {
	cx, cy int64
}

func newSpatialIndex(cellSize float64) *spatialIndex {
	return &spatialIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

func (si *spatialIndex) cellFor(p Point) cellKey {
	return cellKey{
		cx: int64(math.Floor(p.X / si.cellSize)),
		cy: int64(math.Floor(p.Y / si.cellSize)),
	}
}

func (si *spatialIndex) build(points []Point) {
	for i, p := range points {
		k := si.cellFor(p)
		si.cells[k] = append(si.cells[k], i)
	}
}

// neighbors returns indices of every point within eps of points[idx],
// searched by iterating only the 3x3 block of cells around idx's cell.
// Membership uses squared distance to avoid the square root.
func (si *spatialIndex) neighbors(points []Point, idx int, eps float64) []int {
	p := points[idx]
	origin := si.cellFor(p)
	eps2 := eps * eps

	var result []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			k := cellKey{cx: origin.cx + dx, cy: origin.cy + dy}
			for _, candidate := range si.cells[k] {
				q := points[candidate]
				ddx := q.X - p.X
				ddy := q.Y - p.Y
				if ddx*ddx+ddy*ddy <= eps2 {
					result = append(result, candidate)
				}
			}
		}
	}
	return result
}
