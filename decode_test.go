package iconvg

import (
	"errors"
	"testing"
)

// S1 — minimal file, default viewbox.
func TestDecodeMinimalFile(t *testing.T) {
	src := []byte{0x89, 0x49, 0x56, 0x47, 0x00}

	vb, err := DecodeViewBox(src)
	if err != nil {
		t.Fatalf("DecodeViewBox: %v", err)
	}
	if vb != DefaultViewBox {
		t.Errorf("DecodeViewBox: got %+v, want %+v", vb, DefaultViewBox)
	}

	rec := &recordingCanvas{}
	dstRect := Rectangle{Max: [2]float32{64, 64}}
	if err := Decode(rec, dstRect, src, nil); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []string{
		"begin_decode({Min:[0 0] Max:[64 64]})",
		"on_metadata_viewbox({Min:[-32 -32] Max:[32 32]})",
		"on_metadata_suggested_palette([{R:0 G:0 B:0 A:255} {R:0 G:0 B:0 A:255}",
		"end_decode(<nil>, 5, 0)",
	}
	if len(rec.calls) != 4 {
		t.Fatalf("got %d calls, want 4: %v", len(rec.calls), rec.calls)
	}
	if rec.calls[0] != want[0] {
		t.Errorf("call 0: got %q, want %q", rec.calls[0], want[0])
	}
	if rec.calls[3] != want[3] {
		t.Errorf("call 3: got %q, want %q", rec.calls[3], want[3])
	}
}

// nat1 encodes a value in [0, 127] as a 1-byte natural number.
func nat1(v int) byte { return byte(v << 1) }

// S2 — explicit viewbox, four 1-byte coordinate numbers.
func TestDecodeViewBoxExplicit(t *testing.T) {
	// 1-byte coordinate raw u: u-64 == value.
	coord := func(v int) byte { return byte((v + 64) << 1) }
	chunk := []byte{nat1(midViewBox), coord(-24), coord(-24), coord(24), coord(24)}
	src := []byte{0x89, 0x49, 0x56, 0x47, nat1(1), nat1(len(chunk))}
	src = append(src, chunk...)

	vb, err := DecodeViewBox(src)
	if err != nil {
		t.Fatalf("DecodeViewBox: %v", err)
	}
	want := Rectangle{Min: [2]float32{-24, -24}, Max: [2]float32{24, 24}}
	if vb != want {
		t.Errorf("got %+v, want %+v", vb, want)
	}
}

// S3 — bad magic.
func TestDecodeBadMagic(t *testing.T) {
	src := []byte{0x00, 0x00, 0x00, 0x00}
	if _, err := DecodeViewBox(src); err != ErrBadMagicIdentifier {
		t.Errorf("got %v, want %v", err, ErrBadMagicIdentifier)
	}
}

// Invariant 3 — strict id ordering.
func TestDecodeBadMetadataIDOrder(t *testing.T) {
	mkChunk := func(mid int) []byte {
		content := []byte{nat1(mid)}
		return append([]byte{nat1(len(content))}, content...)
	}
	src := []byte{0x89, 0x49, 0x56, 0x47, nat1(2)}
	src = append(src, mkChunk(5)...)
	src = append(src, mkChunk(3)...)
	if _, err := DecodeViewBox(src); err != ErrBadMetadataIDOrder {
		t.Errorf("got %v, want %v", err, ErrBadMetadataIDOrder)
	}
}

// Invariant 4 — chunk length bound.
func TestDecodeBadMetadataChunkLength(t *testing.T) {
	// One chunk, claiming a length of 100 bytes, with none following.
	src := []byte{0x89, 0x49, 0x56, 0x47, nat1(1), nat1(100)}
	if _, err := DecodeViewBox(src); err != ErrBadMetadata {
		t.Errorf("got %v, want %v", err, ErrBadMetadata)
	}
}

// S4 — one-byte line.
func TestDecodeOneByteLine(t *testing.T) {
	coord := func(v int) byte { return byte((v + 64) << 1) }
	src := []byte{
		0x89, 0x49, 0x56, 0x47, 0x00, // magic, no metadata chunks
		0xc0, coord(0), coord(0), // start path at CREG[0], (0,0)
		0x00, coord(16), coord(0), // L, reps=1, to (16, 0)
		0xe1, // z
	}
	rec := &recordingCanvas{}
	dstRect := Rectangle{Max: [2]float32{64, 64}}
	if err := Decode(rec, dstRect, src, nil); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var got []string
	for _, c := range rec.calls {
		got = append(got, c)
	}
	mustContain := []string{
		"begin_drawing",
		"begin_path(32, 32)", // (0,0) in graphic space, scale 1 bias 32
		"path_line_to(48, 32)",
		"end_path",
	}
	for _, want := range mustContain {
		found := false
		for _, c := range got {
			if c == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("calls %v do not contain %q", got, want)
		}
	}
}

// Invariant 7 — transform correctness.
func TestDecodeTransform(t *testing.T) {
	coord := func(v int) byte { return byte((v + 64) << 1) }
	src := []byte{
		0x89, 0x49, 0x56, 0x47, 0x00,
		0xc0, coord(0), coord(0),
		0x00, coord(32), coord(32),
		0xe1,
	}
	rec := &recordingCanvas{}
	dstRect := Rectangle{Max: [2]float32{64, 64}}
	if err := Decode(rec, dstRect, src, nil); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	wantBegin := "begin_path(32, 32)"
	wantLine := "path_line_to(64, 64)"
	var sawBegin, sawLine bool
	for _, c := range rec.calls {
		if c == wantBegin {
			sawBegin = true
		}
		if c == wantLine {
			sawLine = true
		}
	}
	if !sawBegin {
		t.Errorf("calls %v missing %q", rec.calls, wantBegin)
	}
	if !sawLine {
		t.Errorf("calls %v missing %q", rec.calls, wantLine)
	}
}

// Invariant 8 — LOD gating.
func TestDecodeLODGating(t *testing.T) {
	coord := func(v int) byte { return byte((v + 64) << 1) }
	real := func(v int) byte { return byte(v << 1) }
	src := []byte{
		0x89, 0x49, 0x56, 0x47, 0x00,
		0xc7, real(10), real(20), // set LOD (10, 20)
		0xc0, coord(0), coord(0),
		0x00, coord(16), coord(0),
		0xe1,
	}
	rec := &recordingCanvas{}
	dstRect := Rectangle{Max: [2]float32{64, 64}}
	opts := &DecodeOptions{HeightInPixels: 5}
	if err := Decode(rec, dstRect, src, opts); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for _, c := range rec.calls {
		if c == "begin_drawing" || c == "end_drawing({Kind:0 FlatColor:{R:0 G:0 B:0 A:255} GradientSpread:0 GradientStops:[] GradientTransform:[0 0 0 0 0 0]})" {
			t.Errorf("gated-out drawing region reached user canvas: %v", rec.calls)
		}
	}
}

// S5 — smooth quad reflection.
func TestDecodeSmoothQuadReflection(t *testing.T) {
	coord := func(v int) byte { return byte((v + 64) << 1) }
	src := []byte{
		0x89, 0x49, 0x56, 0x47, 0x00,
		0xc0, coord(0), coord(0), // start path
		0x60, coord(1), coord(1), coord(2), coord(2), // Q ctl(1,1) end(2,2)
		0x40, coord(4), coord(2), // T end(4,2): implicit ctl (3,3)
		0xe1,
	}
	rec := &recordingCanvas{}
	dstRect := Rectangle{Max: [2]float32{64, 64}}
	if err := Decode(rec, dstRect, src, nil); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := "path_quad_to(35, 35, 36, 34)" // (3,3) and (4,2), biased by 32
	var found bool
	for _, c := range rec.calls {
		if c == want {
			found = true
		}
	}
	if !found {
		t.Errorf("calls %v do not contain %q", rec.calls, want)
	}
}

// S6 — truncated path.
func TestDecodeTruncatedPath(t *testing.T) {
	coord := func(v int) byte { return byte((v + 64) << 1) }
	src := []byte{
		0x89, 0x49, 0x56, 0x47, 0x00,
		0xc0, coord(0), coord(0),
	}
	rec := &recordingCanvas{}
	dstRect := Rectangle{Max: [2]float32{64, 64}}
	err := Decode(rec, dstRect, src, nil)
	if !errors.Is(err, ErrBadPathUnfinished) {
		t.Errorf("got %v, want %v", err, ErrBadPathUnfinished)
	}
}

// Invariant 6 — path bracketing.
func TestDecodePathBracketing(t *testing.T) {
	coord := func(v int) byte { return byte((v + 64) << 1) }
	src := []byte{
		0x89, 0x49, 0x56, 0x47, 0x00,
		0xc0, coord(0), coord(0),
		0x00, coord(16), coord(0),
		0xe2, coord(-16), coord(0), // z; M
		0x00, coord(0), coord(16),
		0xe1,
	}
	rec := &recordingCanvas{}
	dstRect := Rectangle{Max: [2]float32{64, 64}}
	if err := Decode(rec, dstRect, src, nil); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	depth := 0
	sawBeginDrawing := false
	for _, c := range rec.calls {
		switch c[:min(len(c), 11)] {
		case "begin_path(":
			if depth != 0 {
				t.Fatalf("nested begin_path without end_path: %v", rec.calls)
			}
			depth = 1
		case "end_path":
			if depth != 1 {
				t.Fatalf("end_path without begin_path: %v", rec.calls)
			}
			depth = 0
		case "begin_drawi":
			sawBeginDrawing = true
		}
	}
	if depth != 0 {
		t.Errorf("unbalanced begin_path/end_path: %v", rec.calls)
	}
	if !sawBeginDrawing {
		t.Errorf("never saw begin_drawing: %v", rec.calls)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
