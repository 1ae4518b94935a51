package canvas

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned for output formats without an encoder
var ErrUnknownFormat = errors.New("unknown image format")

// Format names an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"  // Plain text PPM (P3)
	FormatPPM6 Format = "ppm6" // Binary PPM (P6)
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
)

// FormatFromName parses a format name such as "png" or "ppm6"
func FormatFromName(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPPM, FormatPPM6, FormatPNG, FormatBMP:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from a file extension. ".ppm" means plain PPM.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return FormatFromName(ext)
}

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	if f == FormatPPM6 {
		return ".ppm"
	}
	return "." + string(f)
}

// Encode writes the canvas to w in the given format
func Encode(w io.Writer, c *Canvas, format Format) error {
	switch format {
	case FormatPPM:
		return encodePlainPPM(w, c)
	case FormatPPM6:
		return encodeBinaryPPM(w, c)
	case FormatPNG:
		return png.Encode(w, c.ToRGBA())
	case FormatBMP:
		return bmp.Encode(w, c.ToRGBA())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SaveFile encodes the canvas into path, choosing the format from its extension
func SaveFile(path string, c *Canvas) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return SaveFileAs(path, c, format)
}

// SaveFileAs encodes the canvas into path using format
func SaveFileAs(path string, c *Canvas, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Encode(file, c, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// encodePlainPPM writes a P3 header followed by one "r g b" line per pixel
func encodePlainPPM(w io.Writer, c *Canvas) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.width, c.height)

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.pixels[y][x]
			fmt.Fprintf(bw, "%d %d %d\n", ColorToByte(p.X), ColorToByte(p.Y), ColorToByte(p.Z))
		}
	}
	return bw.Flush()
}

func encodeBinaryPPM(w io.Writer, c *Canvas) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", c.width, c.height)

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.pixels[y][x]
			bw.Write([]byte{ColorToByte(p.X), ColorToByte(p.Y), ColorToByte(p.Z)})
		}
	}
	return bw.Flush()
}
