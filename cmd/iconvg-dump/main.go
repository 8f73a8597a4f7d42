// Command iconvg-dump decodes an IconVG graphic and reports its metadata,
// optionally rasterizing it to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"

	"github.com/icvg/iconvg"
)

var (
	outPath = flag.String("out", "", "write a rasterized PNG to this path (empty: skip rasterizing)")
	width   = flag.Int("width", 128, "output width in pixels")
	height  = flag.Int("height", 128, "output height in pixels")
	debug   = flag.Bool("debug", false, "log every Canvas call to stderr")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: iconvg-dump [flags] FILE.ivg")
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		log.Fatal(err)
	}
}

func run(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	viewBox, err := iconvg.DecodeViewBox(src)
	if err != nil {
		return fmt.Errorf("decoding viewbox: %w", err)
	}
	fmt.Printf("viewbox: %+v (width %g, height %g)\n", viewBox, viewBox.Width(), viewBox.Height())

	dstRect := iconvg.Rectangle{Max: [2]float32{float32(*width), float32(*height)}}

	var canvas iconvg.Canvas = iconvg.BrokenCanvas(nil)
	var dst *image.NRGBA
	if *outPath != "" {
		dst = image.NewNRGBA(image.Rect(0, 0, *width, *height))
		draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
		canvas = iconvg.NewRasterCanvas(dst, dst.Bounds(), draw.Over)
	}
	if *debug {
		canvas = iconvg.DebugCanvas(os.Stderr, path, canvas)
	}

	if err := iconvg.Decode(canvas, dstRect, src, nil); err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	if dst == nil {
		return nil
	}
	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
