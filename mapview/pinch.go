package mapview

import (
	"math"

	"github.com/OpticalFlyer/trellis/scene"
)

// Pinch zooms once the distance between two touches changes by more than
// this factor.
const pinchThreshold = 1.1

type touchPoint struct{ x, y float64 }

// pinchListener zooms the map when two touches move apart or together.
// The mouse, pointer 0, is ignored.
type pinchListener struct {
	m        *MapView
	touches  map[int]touchPoint
	baseline float64
}

func newPinchListener(m *MapView) *pinchListener {
	return &pinchListener{m: m, touches: make(map[int]touchPoint)}
}

func (p *pinchListener) Handle(e *scene.InputEvent) bool {
	if e.Pointer == 0 {
		return false
	}
	switch e.Type {
	case scene.TouchDown:
		p.touches[e.Pointer] = touchPoint{e.StageX, e.StageY}
		if len(p.touches) == 2 {
			// A second finger turns the gesture into a pinch.
			p.m.drag.Cancel()
			p.m.click.Cancel()
			p.baseline, _, _ = p.measure()
		}
		return true
	case scene.TouchDragged:
		if _, ok := p.touches[e.Pointer]; !ok {
			return true
		}
		p.touches[e.Pointer] = touchPoint{e.StageX, e.StageY}
		if len(p.touches) != 2 || p.baseline <= 0 {
			return true
		}
		dist, midX, midY := p.measure()
		x, y := p.m.StageToLocal(midX, midY)
		switch {
		case dist > p.baseline*pinchThreshold:
			p.m.ZoomAtPoint(true, x, y)
			p.baseline = dist
		case dist < p.baseline/pinchThreshold:
			p.m.ZoomAtPoint(false, x, y)
			p.baseline = dist
		}
		return true
	case scene.TouchUp:
		delete(p.touches, e.Pointer)
		p.baseline = 0
		return true
	}
	return false
}

// measure returns the distance between the first two touches and their
// midpoint in stage coordinates.
func (p *pinchListener) measure() (dist, midX, midY float64) {
	var pts []touchPoint
	for _, t := range p.touches {
		pts = append(pts, t)
		if len(pts) == 2 {
			break
		}
	}
	if len(pts) < 2 {
		return 0, 0, 0
	}
	a, b := pts[0], pts[1]
	return math.Hypot(b.x-a.x, b.y-a.y), (a.x + b.x) / 2, (a.y + b.y) / 2
}
