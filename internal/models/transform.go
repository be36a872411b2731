package models

// Zoom bounds applied to every stored view transform.
const (
	MinScale = 1.0
	MaxScale = 5.0
)

// ViewTransform is the persisted pan/zoom state of one record's photo.
// Created lazily on first interaction, deleted together with the record.
type ViewTransform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Viewport is the size of the area the photo is rendered into, in the same
// units the offsets use.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultTransform is the identity transform used before any interaction.
func DefaultTransform() ViewTransform {
	return ViewTransform{Scale: MinScale}
}

// Clamp bounds the transform so the photo cannot be zoomed outside
// [MinScale, MaxScale] or panned past its edges: at scale s the visible
// overhang per axis is (s-1)·viewport/2, which is the largest offset that
// still keeps the image covering the viewport.
func (t ViewTransform) Clamp(vp Viewport) ViewTransform {
	out := t
	out.Scale = clamp(out.Scale, MinScale, MaxScale)

	maxX := (out.Scale - 1) * vp.Width / 2
	maxY := (out.Scale - 1) * vp.Height / 2
	out.OffsetX = clamp(out.OffsetX, -maxX, maxX)
	out.OffsetY = clamp(out.OffsetY, -maxY, maxY)

	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
