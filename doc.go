/*
Package iconvg implements a decoder for IconVG, a compact binary format for
simple vector graphics: icons, logos, glyphs and emoji.

It is similar in concept to SVG but much simpler: no text, no raster layers,
no scripting, no animation. A graphic is a small, fixed-size virtual machine
program, not a general document format.

Structure

An IconVG graphic starts with a four byte magic identifier, followed by zero
or more metadata chunks (currently just a ViewBox and a suggested palette),
followed by a bytecode program for a small stack-free virtual machine.

The virtual machine alternates between two modes. Styling mode sets color
registers (CREG), number registers (NREG) and the level-of-detail bounds
that gate whether a region is drawn at all. Drawing mode, entered by one of
the "start path" opcodes, appends line, quadratic, cubic and arc segments to
the current subpath, SVG-style, until a "close path" opcode returns to
styling mode.

Decoding

Decode walks the bytecode and drives a Canvas: one BeginDecode/EndDecode
pair bracketing the whole graphic, zero or more BeginDrawing/EndDrawing
regions (each one CREG-resolved Paint, either a flat color or a gradient),
each containing one or more BeginPath/EndPath subpaths built from PathLineTo,
PathQuadTo and PathCubeTo calls. Every coordinate passed to the Canvas has
already been mapped from the graphic's ViewBox into the destination
rectangle given to Decode.

	err := iconvg.Decode(canvas, dstRect, src, nil)

RasterCanvas implements Canvas by rasterizing onto a draw.Image, using
golang.org/x/image/vector for scan conversion. DebugCanvas wraps another
Canvas and logs every call it receives. BrokenCanvas is a Canvas whose every
method returns a fixed error, useful for validating a graphic's bytecode
without acting on it.

Level of detail

A graphic can be authored with more than one version of some region, each
tagged with a (lod0, lod1) pixel-height range via the "set LOD" opcode. A
region whose range does not contain the destination's height is still
parsed (so the bytecode stream stays in sync) but its drawing calls are
routed to an internal no-op sink instead of the caller's Canvas.

Gradients

A CREG value that is not a valid premultiplied color, but whose alpha byte
is zero and whose blue byte has its high bit set, is not a flat color at
all: it is a gradient descriptor. Its remaining bits name a run of CREG
entries as gradient stops and a run of NREG entries as the affine matrix
mapping the graphic's coordinate space into gradient space. Decode resolves
this once per BeginDrawing into a Paint carrying the stop list, spread rule
and a transform already composed down to destination-pixel space, handing a
Canvas everything it needs without having to know the encoding.
*/
package iconvg
