package screen

import "sort"

// Registry holds one mapper per physical screen, keyed by screen index.
type Registry struct {
	scaleMax float64
	screens  map[int]*Mapper
}

// NewRegistry creates an empty registry whose mappers use the given
// normalized scale.
func NewRegistry(scaleMax float64) *Registry {
	return &Registry{
		scaleMax: scaleMax,
		screens:  make(map[int]*Mapper),
	}
}

// Mapper returns the mapper for a screen index, creating an
// uncalibrated one on first use.
func (r *Registry) Mapper(index int) *Mapper {
	m, ok := r.screens[index]
	if !ok {
		m = NewMapper(r.scaleMax)
		r.screens[index] = m
	}
	return m
}

// Calibrated returns the sorted indices of all calibrated screens.
func (r *Registry) Calibrated() []int {
	var indices []int
	for idx, m := range r.screens {
		if m.Calibrated() {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)
	return indices
}

// Locate maps a camera pixel through the calibrated screens and
// returns the first screen whose bounds contain it. The bool is false
// when the point lies on no screen.
func (r *Registry) Locate(x, y float64) (int, Point, bool) {
	for _, idx := range r.Calibrated() {
		m := r.screens[idx]
		p, ok := m.CameraToNormalized(x, y)
		if ok && m.InBounds(p) {
			return idx, Point{X: p.X / m.scaleMax, Y: p.Y / m.scaleMax}, true
		}
	}
	return 0, Point{}, false
}
