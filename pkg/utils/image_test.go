package utils

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialconnect/pkg/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()

	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestEncodeInlineImageSmallImageKeepsSize(t *testing.T) {
	uri, err := EncodeInlineImage(pngBytes(t, 640, 480))
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestEncodeInlineImageDownscalesWideImage(t *testing.T) {
	uri, err := EncodeInlineImage(pngBytes(t, 2160, 1080))
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 540, img.Bounds().Dy())
}

func TestEncodeInlineImageDownscalesTallImage(t *testing.T) {
	uri, err := EncodeInlineImage(pngBytes(t, 1080, 2160))
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 540, img.Bounds().Dx())
	assert.Equal(t, 1080, img.Bounds().Dy())
}

func TestEncodeInlineImageRejectsGarbage(t *testing.T) {
	_, err := EncodeInlineImage([]byte("not an image"))

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
