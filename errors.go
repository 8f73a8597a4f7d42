package iconvg

import "errors"

// File-format errors: the input bytes violate the IconVG encoding.
var (
	ErrBadMagicIdentifier          = errors.New("iconvg: bad magic identifier")
	ErrBadMetadata                 = errors.New("iconvg: bad metadata")
	ErrBadMetadataIDOrder          = errors.New("iconvg: bad metadata id order")
	ErrBadMetadataViewBox          = errors.New("iconvg: bad metadata (viewbox)")
	ErrBadMetadataSuggestedPalette = errors.New("iconvg: bad metadata (suggested palette)")
	ErrBadNumber                   = errors.New("iconvg: bad number")
	ErrBadCoordinate               = errors.New("iconvg: bad coordinate")
	ErrBadColor                    = errors.New("iconvg: bad color")
	ErrBadStylingOpcode            = errors.New("iconvg: bad styling opcode")
	ErrBadDrawingOpcode            = errors.New("iconvg: bad drawing opcode")
	ErrBadPathUnfinished           = errors.New("iconvg: bad path, unfinished")
)

// Resource errors: reserved for rasterization backends. The core decoder
// never returns this error itself.
var ErrSystemFailureOutOfMemory = errors.New("iconvg: system failure: out of memory")

// Programming errors: caller misuse, not a property of the input bytes.
var (
	ErrNullArgument               = errors.New("iconvg: null argument")
	ErrInvalidConstructorArgument = errors.New("iconvg: invalid constructor argument")
	ErrInvalidPaintType           = errors.New("iconvg: invalid paint type")
	ErrInvalidBackendNotEnabled   = errors.New("iconvg: invalid: backend not enabled")
	ErrUnsupportedVTable          = errors.New("iconvg: unsupported vtable")
)
