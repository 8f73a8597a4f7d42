package iconvg

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Canvas is the callback contract driven by Decode. Implementations receive
// a well-bracketed sequence of calls describing a decoded graphic: exactly
// one BeginDecode/EndDecode pair, zero or more BeginDrawing/EndDrawing
// regions each containing one or more BeginPath/EndPath subpaths, and the two
// metadata notifications fired once each before the first BeginDrawing.
//
// Any method may return a non-nil error to abort the decode early; that
// error is propagated to EndDecode and then to the caller of Decode.
type Canvas interface {
	BeginDecode(dst Rectangle) error
	EndDecode(err error, consumed, remaining int) error

	OnMetadataViewBox(viewbox Rectangle) error
	OnMetadataSuggestedPalette(pal *Palette) error

	BeginDrawing() error
	EndDrawing(paint Paint) error

	BeginPath(x0, y0 float32) error
	EndPath() error

	PathLineTo(x1, y1 float32) error
	PathQuadTo(x1, y1, x2, y2 float32) error
	PathCubeTo(x1, y1, x2, y2, x3, y3 float32) error
}

// noopCanvas implements Canvas by doing nothing and returning no error. The
// decoder routes drawing regions gated out by the current level-of-detail
// bounds to a noopCanvas rather than the caller's Canvas.
type noopCanvas struct{}

func (noopCanvas) BeginDecode(Rectangle) error                  { return nil }
func (noopCanvas) EndDecode(err error, consumed, remaining int) error { return err }
func (noopCanvas) OnMetadataViewBox(Rectangle) error            { return nil }
func (noopCanvas) OnMetadataSuggestedPalette(*Palette) error    { return nil }
func (noopCanvas) BeginDrawing() error                          { return nil }
func (noopCanvas) EndDrawing(Paint) error                       { return nil }
func (noopCanvas) BeginPath(x0, y0 float32) error               { return nil }
func (noopCanvas) EndPath() error                               { return nil }
func (noopCanvas) PathLineTo(x1, y1 float32) error              { return nil }
func (noopCanvas) PathQuadTo(x1, y1, x2, y2 float32) error      { return nil }
func (noopCanvas) PathCubeTo(x1, y1, x2, y2, x3, y3 float32) error { return nil }

// brokenCanvas is a Canvas every one of whose methods returns the same
// fixed error (or nil, if that error is nil), except that EndDecode returns
// its incoming error instead when that is non-nil.
type brokenCanvas struct{ err error }

// BrokenCanvas returns a Canvas whose every method returns err (or nil, if
// err is nil), except EndDecode, which returns the decode's own error when
// there is one and err otherwise. It is useful as a placeholder Canvas when a caller only
// wants to validate an IconVG graphic's bytecode, not act on it.
func BrokenCanvas(err error) Canvas { return brokenCanvas{err} }

func (b brokenCanvas) BeginDecode(Rectangle) error                  { return b.err }
func (b brokenCanvas) EndDecode(err error, consumed, remaining int) error {
	if err != nil {
		return err
	}
	return b.err
}
func (b brokenCanvas) OnMetadataViewBox(Rectangle) error            { return b.err }
func (b brokenCanvas) OnMetadataSuggestedPalette(*Palette) error    { return b.err }
func (b brokenCanvas) BeginDrawing() error                          { return b.err }
func (b brokenCanvas) EndDrawing(Paint) error                       { return b.err }
func (b brokenCanvas) BeginPath(x0, y0 float32) error               { return b.err }
func (b brokenCanvas) EndPath() error                               { return b.err }
func (b brokenCanvas) PathLineTo(x1, y1 float32) error              { return b.err }
func (b brokenCanvas) PathQuadTo(x1, y1, x2, y2 float32) error      { return b.err }
func (b brokenCanvas) PathCubeTo(x1, y1, x2, y2, x3, y3 float32) error { return b.err }

// debugCanvas wraps another Canvas, logging every call to it before
// forwarding.
type debugCanvas struct {
	log     zerolog.Logger
	wrapped Canvas
}

// DebugCanvas returns a Canvas that logs every call made to it, with the
// given prefix as a logger field, before forwarding the call to wrapped.
//
// DebugCanvas panics if wrapped is nil; that is a programming error, not a
// property of a decoded graphic, so it is not reported via the Canvas error
// return path.
func DebugCanvas(w io.Writer, prefix string, wrapped Canvas) Canvas {
	if wrapped == nil {
		panic("iconvg: DebugCanvas: nil wrapped Canvas")
	}
	return &debugCanvas{
		log:     zerolog.New(w).With().Str("canvas", prefix).Logger(),
		wrapped: wrapped,
	}
}

func (d *debugCanvas) BeginDecode(dst Rectangle) error {
	d.log.Debug().Interface("dst", dst).Msg("BeginDecode")
	return d.wrapped.BeginDecode(dst)
}

func (d *debugCanvas) EndDecode(err error, consumed, remaining int) error {
	d.log.Debug().AnErr("err", err).Int("consumed", consumed).Int("remaining", remaining).Msg("EndDecode")
	return d.wrapped.EndDecode(err, consumed, remaining)
}

func (d *debugCanvas) OnMetadataViewBox(viewbox Rectangle) error {
	d.log.Debug().Interface("viewbox", viewbox).Msg("OnMetadataViewBox")
	return d.wrapped.OnMetadataViewBox(viewbox)
}

func (d *debugCanvas) OnMetadataSuggestedPalette(pal *Palette) error {
	d.log.Debug().Msg("OnMetadataSuggestedPalette")
	return d.wrapped.OnMetadataSuggestedPalette(pal)
}

func (d *debugCanvas) BeginDrawing() error {
	d.log.Debug().Msg("BeginDrawing")
	return d.wrapped.BeginDrawing()
}

func (d *debugCanvas) EndDrawing(paint Paint) error {
	d.log.Debug().Str("paint", fmt.Sprintf("%+v", paint)).Msg("EndDrawing")
	return d.wrapped.EndDrawing(paint)
}

func (d *debugCanvas) BeginPath(x0, y0 float32) error {
	d.log.Debug().Float32("x0", x0).Float32("y0", y0).Msg("BeginPath")
	return d.wrapped.BeginPath(x0, y0)
}

func (d *debugCanvas) EndPath() error {
	d.log.Debug().Msg("EndPath")
	return d.wrapped.EndPath()
}

func (d *debugCanvas) PathLineTo(x1, y1 float32) error {
	d.log.Debug().Float32("x1", x1).Float32("y1", y1).Msg("PathLineTo")
	return d.wrapped.PathLineTo(x1, y1)
}

func (d *debugCanvas) PathQuadTo(x1, y1, x2, y2 float32) error {
	d.log.Debug().Float32("x1", x1).Float32("y1", y1).Float32("x2", x2).Float32("y2", y2).Msg("PathQuadTo")
	return d.wrapped.PathQuadTo(x1, y1, x2, y2)
}

func (d *debugCanvas) PathCubeTo(x1, y1, x2, y2, x3, y3 float32) error {
	d.log.Debug().
		Float32("x1", x1).Float32("y1", y1).
		Float32("x2", x2).Float32("y2", y2).
		Float32("x3", x3).Float32("y3", y3).
		Msg("PathCubeTo")
	return d.wrapped.PathCubeTo(x1, y1, x2, y2, x3, y3)
}
