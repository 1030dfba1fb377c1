package refpoints

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"shortcardiac/internal/models"
)

// treePoint is a contour point that remembers its position in the contour
type treePoint struct {
	models.Point
	idx int
}

// Compare implements the kdtree.Comparable interface
func (p treePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(treePoint)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	default:
		panic("illegal dimension")
	}
}

// Dims returns the number of dimensions for the KD-tree
func (p treePoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance between two points
func (p treePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(treePoint)
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// treePoints is a collection of treePoint that satisfies kdtree.Interface
type treePoints []treePoint

func (p treePoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p treePoints) Len() int                              { return len(p) }
func (p treePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot implements the kdtree.Interface method
func (p treePoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(treePlane{treePoints: p, Dim: d}, kdtree.MedianOfRandoms(treePlane{treePoints: p, Dim: d}, 100))
}

// treePlane implements sort.Interface and kdtree.SortSlicer for treePoints
type treePlane struct {
	treePoints
	kdtree.Dim
}

func (p treePlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.treePoints[i].X < p.treePoints[j].X
	case 1:
		return p.treePoints[i].Y < p.treePoints[j].Y
	default:
		panic("illegal dimension")
	}
}

func (p treePlane) Slice(start, end int) kdtree.SortSlicer {
	return treePlane{treePoints: p.treePoints[start:end], Dim: p.Dim}
}

func (p treePlane) Swap(i, j int) {
	p.treePoints[i], p.treePoints[j] = p.treePoints[j], p.treePoints[i]
}

// newTree indexes c without reordering the caller's slice
func newTree(c models.Contour) *kdtree.Tree {
	pts := make(treePoints, len(c))
	for i, p := range c {
		pts[i] = treePoint{Point: p, idx: i}
	}
	return kdtree.New(pts, false)
}

// within returns the indices of the tree points strictly closer than radius to q
func within(tree *kdtree.Tree, q models.Point, radius float64) []int {
	r2 := radius * radius
	keeper := kdtree.NewDistKeeper(r2)
	tree.NearestSet(keeper, treePoint{Point: q, idx: -1})

	var out []int
	for _, cd := range keeper.Heap {
		if cd.Comparable == nil || cd.Dist >= r2 {
			continue
		}
		out = append(out, cd.Comparable.(treePoint).idx)
	}
	return out
}
