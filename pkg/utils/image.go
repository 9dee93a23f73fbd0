package utils

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"socialconnect/pkg/errors"
)

const (
	maxImageDimension = 1080
	jpegQuality       = 70

	// Firestore caps a document at 1 MiB; leave headroom for the
	// remaining fields of the owning document.
	maxInlineBytes = 900 * 1024
)

// EncodeInlineImage downscales raw image bytes and returns a base64 data URI
// small enough to embed directly on a document. Images are stored inline
// instead of in blob storage.
func EncodeInlineImage(raw []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", errors.BadRequest("Unsupported image data", err)
	}

	img = shrink(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", errors.Internal("Failed to encode image", err)
	}

	encoded := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	if len(encoded) > maxInlineBytes {
		return "", errors.PayloadTooLarge("Image is too large to attach", nil)
	}

	return encoded, nil
}

func shrink(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxImageDimension && h <= maxImageDimension {
		return src
	}

	if w >= h {
		h = h * maxImageDimension / w
		w = maxImageDimension
	} else {
		w = w * maxImageDimension / h
		h = maxImageDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
