package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"scan.jpg", true},
		{"scan.JPEG", true},
		{"doc.png", true},
		{"doc.bmp", true},
		{"doc.pdf", false},
		{"doc.tiff", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupportedImage(tt.path))
		})
	}
}

func TestDecodeImageErrors(t *testing.T) {
	_, _, err := DecodeImage(nil)
	require.Error(t, err)
	var perr *ImageProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "decode", perr.Operation)

	_, _, err = DecodeImage([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 16), B: 99, A: 255})
		}
	}

	t.Run("png is lossless", func(t *testing.T) {
		data, err := EncodeImage(src, "png", 0)
		require.NoError(t, err)

		img, format, err := DecodeImage(data)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, src.Bounds(), img.Bounds())
		assert.Equal(t, src.RGBAAt(5, 5), ToRGBA(img).RGBAAt(5, 5))
	})

	t.Run("jpeg preserves dimensions", func(t *testing.T) {
		data, err := EncodeImage(src, "jpeg", 90)
		require.NoError(t, err)

		img, format, err := DecodeImage(data)
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, src.Bounds(), img.Bounds())
	})

	t.Run("unknown format falls back to png", func(t *testing.T) {
		data, err := EncodeImage(src, "bmp", 0)
		require.NoError(t, err)

		_, format, err := DecodeImage(data)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
	})
}

func TestEncodeImageNil(t *testing.T) {
	_, err := EncodeImage(nil, "png", 0)
	require.Error(t, err)
	var perr *ImageProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "encode", perr.Operation)
}

func TestToRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, rgba, ToRGBA(rgba))

	gray := image.NewGray(image.Rect(2, 2, 6, 6))
	gray.SetGray(3, 3, color.Gray{Y: 200})
	got := ToRGBA(gray)
	// Conversion normalizes the origin to (0,0).
	assert.Equal(t, image.Rect(0, 0, 4, 4), got.Bounds())
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, got.RGBAAt(1, 1))
}
