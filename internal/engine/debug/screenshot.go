package debug

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"
)

// ScreenshotName returns a timestamped PNG file name.
func ScreenshotName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.png", prefix, t.Format("2006-01-02_15-04-05"))
}

// EncodeScreenshot encodes raw RGBA pixels read back from OpenGL as PNG.
// Rows are flipped since OpenGL has its origin at the bottom-left.
func EncodeScreenshot(pixels []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
