package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

const (
	MaxUploadEdge = 2048
	AvatarEdge    = 256
	jpegQuality   = 85
)

// PrepareUpload decodes an image and, when either edge is larger than
// MaxUploadEdge, scales it down to fit. The result is always JPEG.
func PrepareUpload(r io.Reader) (*bytes.Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > MaxUploadEdge || b.Dy() > MaxUploadEdge {
		img = resize.Thumbnail(MaxUploadEdge, MaxUploadEdge, img, resize.Lanczos3)
	}
	return encode(img)
}

// PrepareAvatar crops the centre square and scales it to AvatarEdge.
func PrepareAvatar(r io.Reader) (*bytes.Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	square := centerSquare(img)
	return encode(resize.Resize(AvatarEdge, AvatarEdge, square, resize.Lanczos3))
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func centerSquare(img image.Image) image.Image {
	b := img.Bounds()
	edge := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-edge)/2
	y0 := b.Min.Y + (b.Dy()-edge)/2
	if si, ok := img.(subImager); ok {
		return si.SubImage(image.Rect(x0, y0, x0+edge, y0+edge))
	}
	return img
}

func encode(img image.Image) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &buf, nil
}
