// Package scene holds the renderer-independent parts of drawing a frame:
// mapping world coordinates onto a surface and fading trails.
package scene

import (
	"math"

	"github.com/iburimskiy/orbits/internal/orbit"
)

// Viewport maps world units, centred on the origin, onto a surface whose origin
// is the top-left corner. Each axis has its own scale so terminal cells, which
// are taller than wide, can still show a round orbit.
type Viewport struct {
	CenterX, CenterY float64
	ScaleX, ScaleY   float64
}

// Fit returns the viewport that shows the whole world box on a surface of the
// given size, keeping the aspect ratio. cellAspect is the height/width ratio of
// one surface unit: 1 for pixels, about 2 for terminal cells.
func Fit(surfaceW, surfaceH int, worldW, worldH, cellAspect float64) Viewport {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	sw, sh := float64(surfaceW), float64(surfaceH)*cellAspect
	scale := 1.0
	if worldW > 0 && worldH > 0 {
		scale = math.Min(sw/worldW, sh/worldH)
	}
	return Viewport{
		CenterX: float64(surfaceW) / 2,
		CenterY: float64(surfaceH) / 2,
		ScaleX:  scale,
		ScaleY:  scale / cellAspect,
	}
}

// Project maps a world point onto the surface.
func (v Viewport) Project(p orbit.Vec2) (float64, float64) {
	return v.CenterX + p.X*v.ScaleX, v.CenterY + p.Y*v.ScaleY
}

// Length maps a world distance onto the surface along the x axis.
func (v Viewport) Length(d float64) float64 {
	return d * v.ScaleX
}

// Segment is one piece of a trail, with the opacity it should be drawn at.
type Segment struct {
	From, To orbit.Vec2
	Alpha    float64
}

// TrailFade returns the opacity of trail point i out of n, rising linearly from
// minAlpha for the oldest point to 1 for the newest.
func TrailFade(i, n int, minAlpha float64) float64 {
	if n <= 1 {
		return 1
	}
	t := float64(i) / float64(n-1)
	return minAlpha + (1-minAlpha)*t
}

// TrailSegments joins consecutive trail points, oldest first. When head is not
// nil the trail is closed off with a segment to the body's current position.
func TrailSegments(trail []orbit.Vec2, head *orbit.Vec2, minAlpha float64) []Segment {
	pts := trail
	if head != nil && len(trail) > 0 {
		pts = make([]orbit.Vec2, 0, len(trail)+1)
		pts = append(pts, trail...)
		pts = append(pts, *head)
	}
	if len(pts) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		segs = append(segs, Segment{
			From:  pts[i-1],
			To:    pts[i],
			Alpha: TrailFade(i-1, len(pts)-1, minAlpha),
		})
	}
	return segs
}
