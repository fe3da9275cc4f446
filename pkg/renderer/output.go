package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ImageFormat selects the encoding used when saving a render
type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatPPM ImageFormat = "ppm"
)

// ParseImageFormat accepts "png" or "ppm" in any case
func ParseImageFormat(s string) (ImageFormat, error) {
	switch ImageFormat(strings.ToLower(s)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatPPM:
		return FormatPPM, nil
	}
	return "", fmt.Errorf("unknown image format %q (want png or ppm)", s)
}

// WritePPM writes the image as a plain-text P3 PPM, one pixel per line
func WritePPM(w io.Writer, img *image.RGBA) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("writing ppm pixel (%d,%d): %w", x, y, err)
			}
		}
	}
	return bw.Flush()
}

// WritePNG writes the image as PNG
func WritePNG(w io.Writer, img *image.RGBA) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WriteImage encodes the image in the given format
func WriteImage(w io.Writer, img *image.RGBA, format ImageFormat) error {
	switch format {
	case FormatPNG:
		return WritePNG(w, img)
	case FormatPPM:
		return WritePPM(w, img)
	}
	return fmt.Errorf("unknown image format %q", format)
}

// SaveImage writes the image to path, creating parent directories as needed
func SaveImage(path string, img *image.RGBA, format ImageFormat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := WriteImage(file, img, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
