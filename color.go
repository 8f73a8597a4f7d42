package iconvg

// ColorType distinguishes the representations a Color payload can take
// before it is resolved against a register bank.
type ColorType uint8

const (
	// ColorTypeRGBA is a direct, already-premultiplied color.
	ColorTypeRGBA ColorType = iota

	// ColorTypeCReg is an indirect color, indexing the CREG color
	// registers of the decoder's virtual machine.
	ColorTypeCReg

	// ColorTypeBlend is an indirect color, blending two other one-byte
	// colors.
	ColorTypeBlend
)

// Color is an IconVG color payload, whose resolved RGBA value can depend on
// context: the running CREG register bank and, transitively, the blend of
// two other payloads.
type Color struct {
	typ  ColorType
	data PremulColor
}

func (c Color) rgba() PremulColor        { return c.data }
func (c Color) cReg() uint8              { return c.data.R }
func (c Color) blend() (t, c0, c1 uint8) { return c.data.R, c.data.G, c.data.B }

// Resolve resolves c's premultiplied RGBA value, given the CREG register
// bank of the decoder virtual machine that is decoding it.
func (c Color) Resolve(cReg *[64]PremulColor) PremulColor {
	switch c.typ {
	case ColorTypeRGBA:
		return c.rgba()
	case ColorTypeCReg:
		return cReg[c.cReg()&0x3f]
	}
	t, c0, c1 := c.blend()
	p, q := uint32(255-t), uint32(t)
	rgba0 := decodeOneByteColor(c0).Resolve(cReg)
	rgba1 := decodeOneByteColor(c1).Resolve(cReg)
	return PremulColor{
		R: uint8(((p * uint32(rgba0.R)) + q*uint32(rgba1.R) + 128) / 255),
		G: uint8(((p * uint32(rgba0.G)) + q*uint32(rgba1.G) + 128) / 255),
		B: uint8(((p * uint32(rgba0.B)) + q*uint32(rgba1.B) + 128) / 255),
		A: uint8(((p * uint32(rgba0.A)) + q*uint32(rgba1.A) + 128) / 255),
	}
}

// RGBAColor returns a direct Color.
func RGBAColor(c PremulColor) Color { return Color{ColorTypeRGBA, c} }

// CRegColor returns an indirect Color referring to a CREG color register.
func CRegColor(i uint8) Color { return Color{ColorTypeCReg, PremulColor{R: i & 0x3f}} }

// BlendColor returns an indirect Color blending two one-byte color payloads.
func BlendColor(t, c0, c1 uint8) Color { return Color{ColorTypeBlend, PremulColor{R: t, G: c0, B: c1}} }

// decodeOneByteColor resolves a single color-payload byte, per the one-byte
// color resolution rule:
//
//   - b < 0x80: an index into the built-in 128-entry one-byte-color table.
//   - 0x80..0xBF: an opaque color with each of its three channels drawn from
//     a 2-bit field of b-0x80.
//   - 0xC0..0xFF: the low 6 bits name a CREG color register.
func decodeOneByteColor(b byte) Color {
	if b < 0x80 {
		return RGBAColor(oneByteColorTable[b])
	}
	if b < 0xc0 {
		v := b - 0x80
		return RGBAColor(PremulColor{
			R: twoBitChannel[(v>>4)&0x3],
			G: twoBitChannel[(v>>2)&0x3],
			B: twoBitChannel[v&0x3],
			A: 0xff,
		})
	}
	return CRegColor(b & 0x3f)
}
