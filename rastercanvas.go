package iconvg

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"

	"github.com/icvg/iconvg/internal/gradient"
)

// RasterCanvas is a Canvas that rasterizes an IconVG graphic onto a
// draw.Image, using golang.org/x/image/vector for scan conversion.
//
// Unlike the decoder, RasterCanvas receives coordinates already mapped into
// destination (pixel) space, so it does no transform bookkeeping of its own
// beyond the flattening vector.Rasterizer needs.
type RasterCanvas struct {
	z vector.Rasterizer

	dst    draw.Image
	r      image.Rectangle
	drawOp draw.Op

	fill      image.Image
	flatColor color.RGBA
	flatImage image.Uniform
	grad      gradient.Gradient

	stops [64]gradient.Stop

	firstPath bool
}

// NewRasterCanvas returns a RasterCanvas that draws onto dst, clipped to r,
// using drawOp as the compositing operator.
func NewRasterCanvas(dst draw.Image, r image.Rectangle, drawOp draw.Op) *RasterCanvas {
	if r.Empty() {
		r = image.Rectangle{}
	}
	return &RasterCanvas{dst: dst, r: r, drawOp: drawOp, firstPath: true}
}

func (z *RasterCanvas) BeginDecode(Rectangle) error { return nil }

func (z *RasterCanvas) EndDecode(err error, consumed, remaining int) error { return err }

func (z *RasterCanvas) OnMetadataViewBox(Rectangle) error { return nil }

func (z *RasterCanvas) OnMetadataSuggestedPalette(*Palette) error { return nil }

func (z *RasterCanvas) BeginDrawing() error {
	width, height := z.r.Dx(), z.r.Dy()
	z.z.Reset(width, height)
	if z.firstPath {
		z.firstPath = false
		z.z.DrawOp = z.drawOp
	}
	return nil
}

func (z *RasterCanvas) EndDrawing(paint Paint) error {
	switch paint.Kind {
	case PaintFlatColor:
		c := paint.FlatColor
		z.flatColor = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		z.flatImage.C = &z.flatColor
		z.fill = &z.flatImage

	case PaintLinearGradient, PaintRadialGradient:
		stops := z.stops[:0]
		for _, s := range paint.GradientStops {
			stops = append(stops, gradient.Stop{
				Offset: s.Offset,
				RGBA64: color.RGBA64{
					R: uint16(s.Color.R) * 0x101,
					G: uint16(s.Color.G) * 0x101,
					B: uint16(s.Color.B) * 0x101,
					A: uint16(s.Color.A) * 0x101,
				},
			})
		}
		shape := gradient.ShapeLinear
		if paint.Kind == PaintRadialGradient {
			shape = gradient.ShapeRadial
		}
		z.grad.Init(shape, paint.GradientSpread, paint.GradientTransform, stops)
		z.fill = &z.grad

	default:
		return ErrInvalidPaintType
	}

	if z.dst != nil && z.fill != nil {
		z.z.Draw(z.dst, z.r, z.fill, image.Point{})
	}
	return nil
}

func (z *RasterCanvas) BeginPath(x0, y0 float32) error {
	z.z.MoveTo(f32.Vec2{x0, y0})
	return nil
}

func (z *RasterCanvas) EndPath() error {
	z.z.ClosePath()
	return nil
}

func (z *RasterCanvas) PathLineTo(x1, y1 float32) error {
	z.z.LineTo(f32.Vec2{x1, y1})
	return nil
}

func (z *RasterCanvas) PathQuadTo(x1, y1, x2, y2 float32) error {
	z.z.QuadTo(f32.Vec2{x1, y1}, f32.Vec2{x2, y2})
	return nil
}

func (z *RasterCanvas) PathCubeTo(x1, y1, x2, y2, x3, y3 float32) error {
	z.z.CubeTo(f32.Vec2{x1, y1}, f32.Vec2{x2, y2}, f32.Vec2{x3, y3})
	return nil
}
