package iconvg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recordingCanvas implements Canvas by appending a string description of
// every call it receives, in order, to its calls slice.
type recordingCanvas struct {
	calls []string
}

func (r *recordingCanvas) record(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingCanvas) BeginDecode(dst Rectangle) error {
	r.record("begin_decode(%+v)", dst)
	return nil
}

func (r *recordingCanvas) EndDecode(err error, consumed, remaining int) error {
	r.record("end_decode(%v, %d, %d)", err, consumed, remaining)
	return err
}

func (r *recordingCanvas) OnMetadataViewBox(viewbox Rectangle) error {
	r.record("on_metadata_viewbox(%+v)", viewbox)
	return nil
}

func (r *recordingCanvas) OnMetadataSuggestedPalette(pal *Palette) error {
	r.record("on_metadata_suggested_palette(%+v)", *pal)
	return nil
}

func (r *recordingCanvas) BeginDrawing() error {
	r.record("begin_drawing")
	return nil
}

func (r *recordingCanvas) EndDrawing(paint Paint) error {
	r.record("end_drawing(%+v)", paint)
	return nil
}

func (r *recordingCanvas) BeginPath(x0, y0 float32) error {
	r.record("begin_path(%g, %g)", x0, y0)
	return nil
}

func (r *recordingCanvas) EndPath() error {
	r.record("end_path")
	return nil
}

func (r *recordingCanvas) PathLineTo(x1, y1 float32) error {
	r.record("path_line_to(%g, %g)", x1, y1)
	return nil
}

func (r *recordingCanvas) PathQuadTo(x1, y1, x2, y2 float32) error {
	r.record("path_quad_to(%g, %g, %g, %g)", x1, y1, x2, y2)
	return nil
}

func (r *recordingCanvas) PathCubeTo(x1, y1, x2, y2, x3, y3 float32) error {
	r.record("path_cube_to(%g, %g, %g, %g, %g, %g)", x1, y1, x2, y2, x3, y3)
	return nil
}

func TestBrokenCanvas(t *testing.T) {
	wantErr := errors.New("boom")
	c := BrokenCanvas(wantErr)
	if err := c.BeginDecode(Rectangle{}); err != wantErr {
		t.Errorf("BeginDecode: got %v, want %v", err, wantErr)
	}
	if err := c.PathLineTo(0, 0); err != wantErr {
		t.Errorf("PathLineTo: got %v, want %v", err, wantErr)
	}
	if err := c.EndDecode(nil, 0, 0); err != wantErr {
		t.Errorf("EndDecode(nil, ...): got %v, want %v", err, wantErr)
	}
	incoming := errors.New("incoming")
	if err := c.EndDecode(incoming, 0, 0); err != incoming {
		t.Errorf("EndDecode(incoming, ...): got %v, want %v (incoming takes priority)", err, incoming)
	}
}

func TestBrokenCanvasNil(t *testing.T) {
	c := BrokenCanvas(nil)
	if err := c.BeginDrawing(); err != nil {
		t.Errorf("got %v, want nil", err)
	}
}

func TestRecordingCanvasSequence(t *testing.T) {
	r := &recordingCanvas{}
	r.BeginDecode(Rectangle{Max: [2]float32{64, 64}})
	r.BeginDrawing()
	r.BeginPath(1, 2)
	r.PathLineTo(3, 4)
	r.EndPath()
	r.EndDrawing(Paint{Kind: PaintFlatColor, FlatColor: PremulColor{A: 0xff}})
	r.EndDecode(nil, 10, 0)

	want := []string{
		"begin_decode({Min:[0 0] Max:[64 64]})",
		"begin_drawing",
		"begin_path(1, 2)",
		"path_line_to(3, 4)",
		"end_path",
		"end_drawing({Kind:0 FlatColor:{R:0 G:0 B:0 A:255} GradientSpread:0 GradientStops:[] GradientTransform:[0 0 0 0 0 0]})",
		"end_decode(<nil>, 10, 0)",
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDebugCanvasPanicsOnNilWrapped(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("DebugCanvas(nil wrapped) did not panic")
		}
	}()
	DebugCanvas(nil, "test", nil)
}
