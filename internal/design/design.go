// Package design decodes customer artwork uploads and renders previews small
// enough to travel by email.
package design

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

const (
	previewQuality = 80
	// PreviewMaxDim bounds the longest side of an emailed preview.
	PreviewMaxDim = 1600
)

var (
	// ErrHelpRequested is returned for the "design help" sentinel.
	ErrHelpRequested = errors.New("design help requested")
	ErrNotDataURI    = errors.New("design is not a data URI")
	ErrTooLarge      = errors.New("design exceeds size limit")
)

// Upload is a decoded design file.
type Upload struct {
	MediaType string
	Data      []byte
}

// IsImage reports whether the upload can be decoded as a raster image.
func (u Upload) IsImage() bool {
	return strings.HasPrefix(u.MediaType, "image/") && u.MediaType != "image/svg+xml"
}

// Extension guesses a file extension for the media type.
func (u Upload) Extension() string {
	switch u.MediaType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "application/pdf":
		return ".pdf"
	}
	if exts, err := mime.ExtensionsByType(u.MediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

// Parse decodes a base64 data URI. maxBytes <= 0 disables the size check.
func Parse(value string, maxBytes int) (Upload, error) {
	value = strings.TrimSpace(value)
	if value == domain.DesignHelpRequested {
		return Upload{}, ErrHelpRequested
	}
	rest, ok := strings.CutPrefix(value, "data:")
	if !ok {
		return Upload{}, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Upload{}, ErrNotDataURI
	}
	params := strings.Split(meta, ";")
	if params[len(params)-1] != "base64" {
		return Upload{}, fmt.Errorf("%w: only base64 payloads are accepted", ErrNotDataURI)
	}
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return Upload{}, ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Upload{}, fmt.Errorf("decode design: %w", err)
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return Upload{}, ErrTooLarge
	}
	return Upload{MediaType: mediaType, Data: data}, nil
}

// Validate accepts a data URI within the limit or the help sentinel.
func Validate(value string, maxBytes int) error {
	_, err := Parse(value, maxBytes)
	if errors.Is(err, ErrHelpRequested) {
		return nil
	}
	return err
}

// Preview decodes an image and re-encodes it as JPEG fitting in maxDim x maxDim.
func Preview(data []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: previewQuality}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten paints transparent artwork onto white so JPEG does not turn it black.
func flatten(img image.Image) image.Image {
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), image.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
