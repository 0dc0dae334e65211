package testutils

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

// PNGBytes returns an encoded PNG of the given dimensions.
func PNGBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	return encodeTestImage(t, width, height, "png")
}

// JPEGBytes returns an encoded JPEG of the given dimensions.
func JPEGBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	return encodeTestImage(t, width, height, "jpeg")
}

// GIFBytes returns an encoded GIF of the given dimensions.
func GIFBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	return encodeTestImage(t, width, height, "gif")
}

// BMPBytes returns an encoded BMP of the given dimensions.
func BMPBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	return encodeTestImage(t, width, height, "bmp")
}

func encodeTestImage(t *testing.T, width, height int, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	default:
		t.Fatalf("unsupported test image format: %s", format)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}
