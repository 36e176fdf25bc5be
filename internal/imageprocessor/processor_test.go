package imageprocessor

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func encodeJPEG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return &buf
}

func TestResizeShrinksToVariant(t *testing.T) {
	p := NewProcessor(85)

	out, format, err := p.Resize(encodeJPEG(t, 600, 300), VariantThumbnail)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	width, height, err := Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 150, width)
	assert.Equal(t, 75, height) // пропорции 2:1 сохранены
}

func TestResizeKeepsSmallImages(t *testing.T) {
	p := NewProcessor(85)

	out, _, err := p.Resize(encodeJPEG(t, 100, 80), VariantThumbnail)
	require.NoError(t, err)

	width, height, err := Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 100, width)
	assert.Equal(t, 80, height)
}

func TestResizePreservesPNG(t *testing.T) {
	p := NewProcessor(85)

	_, format, err := p.Resize(encodePNG(t, 600, 600), VariantMedium)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestResizePortrait(t *testing.T) {
	p := NewProcessor(85)

	out, _, err := p.Resize(encodeJPEG(t, 300, 600), VariantThumbnail)
	require.NoError(t, err)

	width, height, err := Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 75, width)
	assert.Equal(t, 150, height)
}

func TestResizeRejectsGarbage(t *testing.T) {
	p := NewProcessor(85)

	_, _, err := p.Resize(bytes.NewReader([]byte("not an image")), VariantThumbnail)
	assert.Error(t, err)
}

func TestDimensions(t *testing.T) {
	width, height, err := Dimensions(encodePNG(t, 640, 480))
	require.NoError(t, err)
	assert.Equal(t, 640, width)
	assert.Equal(t, 480, height)

	_, _, err = Dimensions(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestNewProcessorQualityBounds(t *testing.T) {
	assert.Equal(t, 85, NewProcessor(0).quality)
	assert.Equal(t, 85, NewProcessor(101).quality)
	assert.Equal(t, 70, NewProcessor(70).quality)
}
