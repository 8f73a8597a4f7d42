package iconvg

import (
	"bytes"

	"github.com/icvg/iconvg/internal/arc"
)

// DecodeOptions are the optional parameters to Decode.
type DecodeOptions struct {
	// HeightInPixels overrides the height (in pixels) used to evaluate
	// level-of-detail gating. Zero means "derive it from the destination
	// rectangle". It does not affect the ViewBox-to-destination-rectangle
	// transform, which depends only on the destination rectangle.
	HeightInPixels int

	// Palette, if non-nil, overrides the graphic's suggested palette for
	// CREG initialization and drawing. It does not change what is reported
	// to OnMetadataSuggestedPalette, which always reflects the graphic's
	// own suggested palette (or the default, if it has none).
	Palette *Palette
}

// DecodeViewBox decodes only as much of src as is needed to discover the
// graphic's ViewBox, validating the magic identifier and metadata chunk
// framing and id ordering along the way. It ignores metadata ids other than
// the ViewBox's. If src has no ViewBox chunk, it returns DefaultViewBox.
func DecodeViewBox(src []byte) (Rectangle, error) {
	b := buffer(src)
	if !bytes.HasPrefix(b, magicBytes) {
		return Rectangle{}, ErrBadMagicIdentifier
	}
	b = b[len(magic):]

	nChunks, n := b.decodeNatural()
	if n == 0 {
		return Rectangle{}, ErrBadMetadata
	}
	b = b[n:]

	viewBox := DefaultViewBox
	prevID := int64(-1)
	for ; nChunks > 0; nChunks-- {
		length, n := b.decodeNatural()
		if n == 0 || uint32(len(b)-n) < length {
			return Rectangle{}, ErrBadMetadata
		}
		b = b[n:]
		chunk := b[:length]
		rest := b[length:]

		mid, n := chunk.decodeNatural()
		if n == 0 {
			return Rectangle{}, ErrBadMetadata
		}
		if int64(mid) <= prevID {
			return Rectangle{}, ErrBadMetadataIDOrder
		}
		prevID = int64(mid)
		chunk = chunk[n:]

		if mid == midViewBox {
			vb, err := decodeViewBoxChunk(chunk)
			if err != nil {
				return Rectangle{}, err
			}
			viewBox = vb
		}
		b = rest
	}
	return viewBox, nil
}

// Decode decodes an IconVG graphic, driving canvas with the events described
// by its metadata and bytecode. dstRect is the destination rectangle that
// the graphic's ViewBox is mapped onto.
func Decode(canvas Canvas, dstRect Rectangle, src []byte, opts *DecodeOptions) error {
	if canvas == nil {
		return ErrNullArgument
	}

	d := &decoder{canvas: canvas, m: Metadata{ViewBox: DefaultViewBox, Palette: DefaultPalette}}
	d.lod0, d.lod1 = 0, positiveInfinity

	err := d.run(dstRect, src, opts)
	return canvas.EndDecode(err, len(src)-len(d.remaining), len(d.remaining))
}

type decoder struct {
	canvas Canvas
	active Canvas

	m Metadata

	cReg [64]PremulColor
	nReg [64]float32
	csel uint8
	nsel uint8

	lod0, lod1 float32
	heightPx   float32

	scaleX, biasX float32
	scaleY, biasY float32

	currX, currY float32
	reflX, reflY float32

	paint Paint

	remaining buffer
}

var styleAdjustments = [8]uint8{0, 1, 2, 3, 4, 5, 6, 0}

func (d *decoder) run(dstRect Rectangle, src []byte, opts *DecodeOptions) error {
	b := buffer(src)
	d.remaining = b

	if err := d.canvas.BeginDecode(dstRect); err != nil {
		return err
	}

	if !bytes.HasPrefix(b, magicBytes) {
		return ErrBadMagicIdentifier
	}
	b = b[len(magic):]
	d.remaining = b

	nChunks, n := b.decodeNatural()
	if n == 0 {
		return ErrBadMetadata
	}
	b = b[n:]
	d.remaining = b

	for ; nChunks > 0; nChunks-- {
		var err error
		b, err = d.decodeMetadataChunk(b, opts)
		if err != nil {
			return err
		}
		d.remaining = b
	}

	d.cReg = [64]PremulColor(d.m.Palette)
	if opts != nil && opts.Palette != nil {
		d.cReg = [64]PremulColor(*opts.Palette)
	}

	heightPx := float32(dstRect.Height())
	if opts != nil && opts.HeightInPixels > 0 {
		h := opts.HeightInPixels
		if h > 1<<20 {
			h = 1 << 20
		}
		heightPx = float32(h)
	}
	d.heightPx = heightPx

	d.recalcTransform(dstRect)

	if err := d.canvas.OnMetadataViewBox(d.m.ViewBox); err != nil {
		return err
	}
	pal := d.m.Palette
	if err := d.canvas.OnMetadataSuggestedPalette(&pal); err != nil {
		return err
	}

	mf := (*decoder).decodeStyling
	for len(b) > 0 {
		var err error
		mf, b, err = mf(d, b)
		if err != nil {
			return err
		}
		d.remaining = b
	}
	// Running out of bytes ends the graphic only in styling mode; in
	// drawing mode it reports ErrBadPathUnfinished.
	_, _, err := mf(d, b)
	return err
}

func (d *decoder) recalcTransform(dstRect Rectangle) {
	vb := d.m.ViewBox
	vw, vh := vb.Width(), vb.Height()
	dw, dh := dstRect.Width(), dstRect.Height()
	if vw <= 0 || vh <= 0 || dw <= 0 || dh <= 0 {
		d.scaleX, d.biasX = 1, 0
		d.scaleY, d.biasY = 1, 0
		return
	}
	d.scaleX = dw / vw
	d.biasX = dstRect.Min[0] - vb.Min[0]*d.scaleX
	d.scaleY = dh / vh
	d.biasY = dstRect.Min[1] - vb.Min[1]*d.scaleY
}

func (d *decoder) transform(x, y float32) (float32, float32) {
	return x*d.scaleX + d.biasX, y*d.scaleY + d.biasY
}

func decodeViewBoxChunk(chunk buffer) (Rectangle, error) {
	var vb Rectangle
	var err error
	if vb.Min[0], chunk, err = decodeNumberFrom(chunk, buffer.decodeCoordinate); err != nil {
		return Rectangle{}, ErrBadMetadataViewBox
	}
	if vb.Min[1], chunk, err = decodeNumberFrom(chunk, buffer.decodeCoordinate); err != nil {
		return Rectangle{}, ErrBadMetadataViewBox
	}
	if vb.Max[0], chunk, err = decodeNumberFrom(chunk, buffer.decodeCoordinate); err != nil {
		return Rectangle{}, ErrBadMetadataViewBox
	}
	if vb.Max[1], chunk, err = decodeNumberFrom(chunk, buffer.decodeCoordinate); err != nil {
		return Rectangle{}, ErrBadMetadataViewBox
	}
	if len(chunk) != 0 {
		return Rectangle{}, ErrBadMetadataViewBox
	}
	if !(vb.Min[0] <= vb.Max[0]) || !(vb.Min[1] <= vb.Max[1]) ||
		isNaNOrInfinity(vb.Min[0]) || isNaNOrInfinity(vb.Min[1]) ||
		isNaNOrInfinity(vb.Max[0]) || isNaNOrInfinity(vb.Max[1]) {
		return Rectangle{}, ErrBadMetadataViewBox
	}
	return vb, nil
}

func (d *decoder) decodeMetadataChunk(src buffer, opts *DecodeOptions) (buffer, error) {
	length, n := src.decodeNatural()
	if n == 0 {
		return nil, ErrBadMetadata
	}
	src = src[n:]
	if uint64(length) > uint64(len(src)) {
		return nil, ErrBadMetadata
	}
	chunk := src[:length]
	rest := src[length:]

	mid, n := chunk.decodeNatural()
	if n == 0 {
		return nil, ErrBadMetadata
	}
	if mid >= uint32(len(midDescriptions)) {
		return nil, ErrBadMetadata
	}
	chunk = chunk[n:]

	switch mid {
	case midViewBox:
		vb, err := decodeViewBoxChunk(chunk)
		if err != nil {
			return nil, err
		}
		d.m.ViewBox = vb

	case midSuggestedPalette:
		if len(chunk) == 0 {
			return nil, ErrBadMetadataSuggestedPalette
		}
		count, format := 1+int(chunk[0]&0x3f), chunk[0]>>6
		decode := buffer.decodeColor4
		switch format {
		case 0:
			decode = buffer.decodeColor1
		case 1:
			decode = buffer.decodeColor2
		case 2:
			decode = buffer.decodeColor3Direct
		}
		chunk = chunk[1:]

		for i := 0; i < count; i++ {
			c, n := decode(chunk)
			if n == 0 {
				return nil, ErrBadMetadataSuggestedPalette
			}
			rgba := c.rgba()
			if c.typ != ColorTypeRGBA || !rgba.valid() {
				rgba = opaqueBlack
			}
			chunk = chunk[n:]
			d.m.Palette[i] = rgba
		}
		if len(chunk) != 0 {
			return nil, ErrBadMetadataSuggestedPalette
		}

	default:
		return nil, ErrBadMetadata
	}

	return rest, nil
}

type decodeNumberFunc func(buffer) (float32, int)

func decodeNumberFrom(src buffer, dnf decodeNumberFunc) (float32, buffer, error) {
	x, n := dnf(src)
	if n == 0 {
		return 0, nil, ErrBadNumber
	}
	return x, src[n:], nil
}

func decodeCoordinatesFrom(coords []float32, src buffer) (buffer, error) {
	var err error
	for i := range coords {
		coords[i], src, err = decodeNumberFrom(src, buffer.decodeCoordinate)
		if err != nil {
			return nil, ErrBadCoordinate
		}
	}
	return src, nil
}

type modeFunc func(d *decoder, src buffer) (modeFunc, buffer, error)

func (d *decoder) decodeStyling(src buffer) (modeFunc, buffer, error) {
	if len(src) == 0 {
		return nil, nil, nil
	}
	switch opcode := src[0]; {
	case opcode < 0x40:
		d.csel = opcode & 0x3f
		return (*decoder).decodeStyling, src[1:], nil
	case opcode < 0x80:
		d.nsel = opcode & 0x3f
		return (*decoder).decodeStyling, src[1:], nil
	case opcode < 0xa8:
		return d.decodeSetCReg(src, opcode)
	case opcode < 0xc0:
		return d.decodeSetNReg(src, opcode)
	case opcode < 0xc7:
		return d.decodeStartPath(src, opcode)
	case opcode == 0xc7:
		return d.decodeSetLOD(src)
	}
	return nil, nil, ErrBadStylingOpcode
}

func (d *decoder) decodeSetCReg(src buffer, opcode byte) (modeFunc, buffer, error) {
	var decode func(buffer) (Color, int)
	switch (opcode - 0x80) >> 3 {
	case 0:
		decode = buffer.decodeColor1
	case 1:
		decode = buffer.decodeColor2
	case 2:
		decode = buffer.decodeColor3Direct
	case 3:
		decode = buffer.decodeColor4
	default:
		decode = buffer.decodeColor3Indirect
	}
	raw := opcode & 0x07
	adj := styleAdjustments[raw]
	incr := raw == 7
	src = src[1:]

	c, n := decode(src)
	if n == 0 {
		return nil, nil, ErrBadColor
	}
	src = src[n:]

	d.cReg[(d.csel-adj)&0x3f] = c.Resolve(&d.cReg)
	if incr {
		d.csel++
	}
	return (*decoder).decodeStyling, src, nil
}

func (d *decoder) decodeSetNReg(src buffer, opcode byte) (modeFunc, buffer, error) {
	decode := buffer.decodeZeroToOne
	switch (opcode - 0xa8) >> 3 {
	case 0:
		decode = buffer.decodeReal
	case 1:
		decode = buffer.decodeCoordinate
	}
	raw := opcode & 0x07
	adj := styleAdjustments[raw]
	incr := raw == 7
	src = src[1:]

	f, n := decode(src)
	if n == 0 {
		return nil, nil, ErrBadNumber
	}
	src = src[n:]

	d.nReg[(d.nsel-adj)&0x3f] = f
	if incr {
		d.nsel++
	}
	return (*decoder).decodeStyling, src, nil
}

func (d *decoder) decodeStartPath(src buffer, opcode byte) (modeFunc, buffer, error) {
	adj := opcode & 0x07
	src = src[1:]

	var x, y float32
	var err error
	if x, src, err = decodeNumberFrom(src, buffer.decodeCoordinate); err != nil {
		return nil, nil, ErrBadCoordinate
	}
	if y, src, err = decodeNumberFrom(src, buffer.decodeCoordinate); err != nil {
		return nil, nil, ErrBadCoordinate
	}

	c := d.cReg[(d.csel-adj)&0x3f]
	xf := transform2D{ScaleX: d.scaleX, BiasX: d.biasX, ScaleY: d.scaleY, BiasY: d.biasY}
	paint, ok := resolvePaint(c, &d.cReg, &d.nReg, xf)
	if !ok {
		return nil, nil, ErrInvalidPaintType
	}
	d.paint = paint

	inRange := d.heightPx >= d.lod0 && d.heightPx < d.lod1
	if inRange {
		d.active = d.canvas
	} else {
		d.active = noopCanvas{}
	}

	if err := d.active.BeginDrawing(); err != nil {
		return nil, nil, err
	}
	d.currX, d.currY = x, y
	d.reflX, d.reflY = x, y
	tx, ty := d.transform(x, y)
	if err := d.active.BeginPath(tx, ty); err != nil {
		return nil, nil, err
	}
	return (*decoder).decodeDrawing, src, nil
}

func (d *decoder) decodeSetLOD(src buffer) (modeFunc, buffer, error) {
	src = src[1:]
	lod0, src, err := decodeNumberFrom(src, buffer.decodeReal)
	if err != nil {
		return nil, nil, ErrBadNumber
	}
	lod1, src, err := decodeNumberFrom(src, buffer.decodeReal)
	if err != nil {
		return nil, nil, ErrBadNumber
	}
	d.lod0, d.lod1 = lod0, lod1
	return (*decoder).decodeStyling, src, nil
}

func (d *decoder) decodeDrawing(src buffer) (modeFunc, buffer, error) {
	if len(src) == 0 {
		return nil, nil, ErrBadPathUnfinished
	}
	var coords [6]float32

	switch opcode := src[0]; {
	case opcode < 0xe0:
		nibble := opcode >> 4
		nCoords := 0
		nReps := 1 + int(opcode&0x0f)
		isArc := false
		switch nibble {
		case 0x0, 0x1, 0x2, 0x3:
			nCoords = 2
			nReps = 1 + int(opcode&0x1f)
		case 0x4, 0x5:
			nCoords = 2
		case 0x6, 0x7:
			nCoords = 4
		case 0x8, 0x9:
			nCoords = 4
		case 0xa, 0xb:
			nCoords = 6
		case 0xc, 0xd:
			isArc = true
		default:
			return nil, nil, ErrBadDrawingOpcode
		}
		src = src[1:]

		for i := 0; i < nReps; i++ {
			var largeArc, sweep bool
			var err error
			if !isArc {
				src, err = decodeCoordinatesFrom(coords[:nCoords], src)
				if err != nil {
					return nil, nil, err
				}
			} else {
				if src, err = decodeCoordinatesFrom(coords[:2], src); err != nil {
					return nil, nil, err
				}
				if coords[2], src, err = decodeNumberFrom(src, buffer.decodeZeroToOne); err != nil {
					return nil, nil, ErrBadNumber
				}
				var flags uint32
				var n int
				flags, n = src.decodeNatural()
				if n == 0 {
					return nil, nil, ErrBadNumber
				}
				largeArc, sweep = flags&0x01 != 0, flags&0x02 != 0
				src = src[n:]
				if src, err = decodeCoordinatesFrom(coords[4:6], src); err != nil {
					return nil, nil, err
				}
			}

			if err := d.emitDraw(nibble, coords, largeArc, sweep); err != nil {
				return nil, nil, err
			}
		}
		return (*decoder).decodeDrawing, src, nil

	case opcode == 0xe1:
		if err := d.active.EndPath(); err != nil {
			return nil, nil, err
		}
		if err := d.active.EndDrawing(d.paint); err != nil {
			return nil, nil, err
		}
		return (*decoder).decodeStyling, src[1:], nil

	case opcode == 0xe2:
		src = src[1:]
		var err error
		if src, err = decodeCoordinatesFrom(coords[:2], src); err != nil {
			return nil, nil, err
		}
		if err := d.active.EndPath(); err != nil {
			return nil, nil, err
		}
		d.currX, d.currY = coords[0], coords[1]
		d.reflX, d.reflY = coords[0], coords[1]
		tx, ty := d.transform(coords[0], coords[1])
		if err := d.active.BeginPath(tx, ty); err != nil {
			return nil, nil, err
		}
		return (*decoder).decodeDrawing, src, nil

	case opcode == 0xe3:
		src = src[1:]
		var err error
		if src, err = decodeCoordinatesFrom(coords[:2], src); err != nil {
			return nil, nil, err
		}
		if err := d.active.EndPath(); err != nil {
			return nil, nil, err
		}
		d.currX += coords[0]
		d.currY += coords[1]
		d.reflX, d.reflY = d.currX, d.currY
		tx, ty := d.transform(d.currX, d.currY)
		if err := d.active.BeginPath(tx, ty); err != nil {
			return nil, nil, err
		}
		return (*decoder).decodeDrawing, src, nil

	case opcode == 0xe6, opcode == 0xe7, opcode == 0xe8, opcode == 0xe9:
		src = src[1:]
		var v float32
		var err error
		if v, src, err = decodeNumberFrom(src, buffer.decodeCoordinate); err != nil {
			return nil, nil, ErrBadCoordinate
		}
		switch opcode {
		case 0xe6:
			d.currX = v
		case 0xe7:
			d.currX += v
		case 0xe8:
			d.currY = v
		case 0xe9:
			d.currY += v
		}
		d.reflX, d.reflY = d.currX, d.currY
		tx, ty := d.transform(d.currX, d.currY)
		if err := d.active.PathLineTo(tx, ty); err != nil {
			return nil, nil, err
		}
		return (*decoder).decodeDrawing, src, nil

	default:
		return nil, nil, ErrBadDrawingOpcode
	}
}

// emitDraw applies one repeat of a line/quad/cube/arc opcode, given its
// high nibble and the raw (un-transformed, possibly relative) coords just
// decoded, and updates the implicit reflected control point.
func (d *decoder) emitDraw(nibble byte, coords [6]float32, largeArc, sweep bool) error {
	rel := nibble == 0x2 || nibble == 0x3 || nibble == 0x5 || nibble == 0x7 || nibble == 0x9 || nibble == 0xb || nibble == 0xd

	abs := func(i int) (float32, float32) { return coords[i], coords[i+1] }
	off := func(i int) (float32, float32) { return d.currX + coords[i], d.currY + coords[i+1] }
	pt := abs
	if rel {
		pt = off
	}

	switch nibble {
	case 0x0, 0x1, 0x2, 0x3: // L, l
		x, y := pt(0)
		d.currX, d.currY = x, y
		d.reflX, d.reflY = x, y
		tx, ty := d.transform(x, y)
		return d.active.PathLineTo(tx, ty)

	case 0x4, 0x5: // T, t (smooth quad)
		x, y := pt(0)
		cx, cy := d.reflX, d.reflY
		d.reflX, d.reflY = 2*x-cx, 2*y-cy
		d.currX, d.currY = x, y
		tcx, tcy := d.transform(cx, cy)
		tx, ty := d.transform(x, y)
		return d.active.PathQuadTo(tcx, tcy, tx, ty)

	case 0x6, 0x7: // Q, q
		cx, cy := pt(0)
		x, y := pt(2)
		d.reflX, d.reflY = 2*x-cx, 2*y-cy
		d.currX, d.currY = x, y
		tcx, tcy := d.transform(cx, cy)
		tx, ty := d.transform(x, y)
		return d.active.PathQuadTo(tcx, tcy, tx, ty)

	case 0x8, 0x9: // S, s (smooth cube)
		c1x, c1y := d.reflX, d.reflY
		c2x, c2y := pt(0)
		x, y := pt(2)
		d.reflX, d.reflY = 2*x-c2x, 2*y-c2y
		d.currX, d.currY = x, y
		t1x, t1y := d.transform(c1x, c1y)
		t2x, t2y := d.transform(c2x, c2y)
		tx, ty := d.transform(x, y)
		return d.active.PathCubeTo(t1x, t1y, t2x, t2y, tx, ty)

	case 0xa, 0xb: // C, c
		c1x, c1y := pt(0)
		c2x, c2y := pt(2)
		x, y := pt(4)
		d.reflX, d.reflY = 2*x-c2x, 2*y-c2y
		d.currX, d.currY = x, y
		t1x, t1y := d.transform(c1x, c1y)
		t2x, t2y := d.transform(c2x, c2y)
		tx, ty := d.transform(x, y)
		return d.active.PathCubeTo(t1x, t1y, t2x, t2y, tx, ty)

	case 0xc, 0xd: // A, a
		rx, ry := coords[0], coords[1]
		rot := coords[2]
		x, y := pt(4)
		x0, y0 := d.currX, d.currY
		return d.emitArc(x0, y0, rx, ry, rot, largeArc, sweep, x, y)
	}
	return nil
}

// emitArc converts one arc-to command, from (x0, y0) to (x, y) in graphic
// space, to cubic Bézier segments and emits each as a PathCubeTo call,
// transforming every control point to destination space. Arcs are not a
// smooth command, so the reflected control point resets to the endpoint.
func (d *decoder) emitArc(x0, y0, rx, ry, rot float32, largeArc, sweep bool, x, y float32) error {
	var segs [4]arc.Segment
	for _, s := range arc.ToCubics(segs[:0], x0, y0, rx, ry, rot, largeArc, sweep, x, y) {
		t1x, t1y := d.transform(s.X1, s.Y1)
		t2x, t2y := d.transform(s.X2, s.Y2)
		t3x, t3y := d.transform(s.X3, s.Y3)
		if err := d.active.PathCubeTo(t1x, t1y, t2x, t2y, t3x, t3y); err != nil {
			return err
		}
	}
	d.currX, d.currY = x, y
	d.reflX, d.reflY = x, y
	return nil
}
