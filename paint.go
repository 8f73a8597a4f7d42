package iconvg

import (
	"golang.org/x/image/math/f64"

	"github.com/icvg/iconvg/internal/gradient"
)

// PaintKind distinguishes the three shapes a Paint can take.
type PaintKind uint8

const (
	PaintFlatColor PaintKind = iota
	PaintLinearGradient
	PaintRadialGradient
)

// GradientStop is one color stop of a gradient paint.
type GradientStop struct {
	Offset float64
	Color  PremulColor
}

// Paint is the tagged sum of paints a drawing region can be filled with: a
// flat premultiplied color, or a linear or radial gradient.
//
// The decoder only ever constructs PaintFlatColor, PaintLinearGradient and
// PaintRadialGradient values; it is a Canvas implementation's job (such as
// RasterCanvas) to turn one into actual pixels.
type Paint struct {
	Kind PaintKind

	FlatColor PremulColor

	GradientSpread    gradient.Spread
	GradientStops     []GradientStop
	GradientTransform f64.Aff3 // pixel space to gradient space.
}

// transform2D are the parameters of the decoder's graphic-space-to-
// destination-space affine transform, as computed by (*decoder).recalcTransform.
type transform2D struct {
	ScaleX, BiasX float32
	ScaleY, BiasY float32
}

// resolvePaint classifies a CREG-resolved color as a flat color or, per the
// gradient encoding documented for the decoder's color registers, a linear
// or radial gradient. It reports ok == false if c is neither: a color
// register that is not a valid alpha-premultiplied color and also doesn't
// carry the gradient marker is not a usable paint.
//
// xf is the decoder's graphic-space-to-destination-space transform; gradient
// paints carry the inverse of it (composed with the graphic-to-gradient-space
// affine read from NREG) so that a Canvas can map its own destination-space
// pixels directly to gradient space.
func resolvePaint(c PremulColor, cReg *[64]PremulColor, nReg *[64]float32, xf transform2D) (Paint, bool) {
	if c.valid() {
		return Paint{Kind: PaintFlatColor, FlatColor: c}, true
	}
	if c.A != 0x00 || c.B&0x80 == 0 {
		return Paint{}, false
	}

	nStops := int(c.R & 0x3f)
	cBase := int(c.G & 0x3f)
	nBase := int(c.B & 0x3f)

	stops := make([]GradientStop, 0, nStops)
	prevOffset := float64(negativeInfinity)
	for i := 0; i < nStops; i++ {
		stopColor := cReg[(cBase+i)&0x3f]
		if !stopColor.valid() {
			return Paint{}, false
		}
		offset := float64(nReg[(nBase+i)&0x3f])
		if !(0 <= offset && offset <= 1) || !(offset > prevOffset) {
			return Paint{}, false
		}
		prevOffset = offset
		stops = append(stops, GradientStop{Offset: offset, Color: stopColor})
	}

	// The six NREG registers below NBASE hold an affine matrix from graphic
	// space to gradient space. Composing it with the inverse of the
	// decoder's own graphic-to-destination transform yields a matrix from
	// destination (pixel) space directly to gradient space, which is what a
	// Canvas's rasterized output needs.
	a := float64(nReg[(nBase-6)&0x3f])
	b := float64(nReg[(nBase-5)&0x3f])
	c0 := float64(nReg[(nBase-4)&0x3f])
	d := float64(nReg[(nBase-3)&0x3f])
	e := float64(nReg[(nBase-2)&0x3f])
	f := float64(nReg[(nBase-1)&0x3f])

	invSX := 1 / float64(xf.ScaleX)
	invSY := 1 / float64(xf.ScaleY)
	bx := float64(xf.BiasX)
	by := float64(xf.BiasY)

	pix2Grad := f64.Aff3{
		a * invSX, b * invSY, c0 - a*bx*invSX - b*by*invSY,
		d * invSX, e * invSY, f - d*bx*invSX - e*by*invSY,
	}

	kind := PaintLinearGradient
	if (c.B>>6)&0x01 != 0 {
		kind = PaintRadialGradient
	}
	return Paint{
		Kind:              kind,
		GradientSpread:    gradient.Spread(c.G >> 6),
		GradientStops:     stops,
		GradientTransform: pix2Grad,
	}, true
}
