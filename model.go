package iconvg

import "math"

// magic is the four byte identifier that every IconVG graphic starts with.
var magic = [4]byte{0x89, 0x49, 0x56, 0x47}

var magicBytes = magic[:]

const (
	midViewBox          = 0
	midSuggestedPalette = 1
)

var midDescriptions = [...]string{
	midViewBox:          "viewBox",
	midSuggestedPalette: "suggested palette",
}

var (
	positiveInfinity = float32(math.Inf(+1))
	negativeInfinity = float32(math.Inf(-1))
)

func isNaNOrInfinity(f float32) bool {
	return math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)
}

// PremulColor is an RGBA8 color whose channels are premultiplied by alpha.
// It is a distinct type from any non-premultiplied color representation so
// that the two cannot be mixed up at a function boundary: every color that
// flows through a register, a palette entry or a Paint is, by construction,
// already in this form.
type PremulColor struct {
	R, G, B, A uint8
}

func (c PremulColor) valid() bool {
	return c.R <= c.A && c.G <= c.A && c.B <= c.A
}

// opaqueBlack is the fallback color used whenever a malformed color payload
// would otherwise produce an invalid (non-alpha-premultiplied) result.
var opaqueBlack = PremulColor{A: 0xff}

// Rectangle is an axis-aligned rectangle of four finite floating-point
// coordinates.
type Rectangle struct {
	Min [2]float32
	Max [2]float32
}

// Empty reports whether r contains no points: either it is the canonical
// zero rectangle, one of its coordinates is NaN, or a minimum is not
// strictly less than its corresponding maximum.
func (r Rectangle) Empty() bool {
	if r == (Rectangle{}) {
		return true
	}
	for axis := 0; axis < 2; axis++ {
		if math.IsNaN(float64(r.Min[axis])) || math.IsNaN(float64(r.Max[axis])) {
			return true
		}
		if !(r.Min[axis] < r.Max[axis]) {
			return true
		}
	}
	return false
}

// Width returns max_x - min_x, or zero if that is not strictly positive.
func (r Rectangle) Width() float32 {
	if w := r.Max[0] - r.Min[0]; w > 0 {
		return w
	}
	return 0
}

// Height returns max_y - min_y, or zero if that is not strictly positive.
func (r Rectangle) Height() float32 {
	if h := r.Max[1] - r.Min[1]; h > 0 {
		return h
	}
	return 0
}

// AspectRatio returns Width() / Height(), or zero if the height is zero.
func (r Rectangle) AspectRatio() float32 {
	h := r.Height()
	if h == 0 {
		return 0
	}
	return r.Width() / h
}

// DefaultViewBox is the viewBox used when a graphic's metadata does not
// provide one.
var DefaultViewBox = Rectangle{
	Min: [2]float32{-32, -32},
	Max: [2]float32{+32, +32},
}

// Palette is an ordered sequence of 64 premultiplied colors.
type Palette [64]PremulColor

// DefaultPalette is the palette used before any suggested palette or
// caller-supplied palette is applied: 64 fully opaque black entries.
var DefaultPalette = func() (p Palette) {
	for i := range p {
		p[i] = opaqueBlack
	}
	return p
}()

// Metadata holds the information decoded from an IconVG graphic's metadata
// chunks.
type Metadata struct {
	ViewBox Rectangle
	Palette Palette
}

// oneByteColorTable is the built-in table addressed by one-byte color
// payloads less than 0x80. Entries 0..124 are a base-5 encoding of each of
// the R, G and B channels independently (5*5*5 == 125 combinations drawn
// from the five-level ramp below); entries 125..127 are 75% opaque white,
// 50% opaque white and fully transparent black (premultiplied).
var oneByteColorTable [128]PremulColor

var fiveLevelRamp = [5]uint8{0x00, 0x40, 0x80, 0xc0, 0xff}

func init() {
	for x := 0; x < 125; x++ {
		v := x
		blue := fiveLevelRamp[v%5]
		v /= 5
		green := fiveLevelRamp[v%5]
		v /= 5
		red := fiveLevelRamp[v]
		oneByteColorTable[x] = PremulColor{R: red, G: green, B: blue, A: 0xff}
	}
	oneByteColorTable[125] = PremulColor{0xc0, 0xc0, 0xc0, 0xc0}
	oneByteColorTable[126] = PremulColor{0x80, 0x80, 0x80, 0x80}
	oneByteColorTable[127] = PremulColor{0x00, 0x00, 0x00, 0x00}
}

// twoBitChannel maps a 2-bit field to one of four evenly spaced channel
// values, used by the one-byte color range 0x80..0xBF.
var twoBitChannel = [4]uint8{0x00, 0x55, 0xAA, 0xFF}
