package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{G: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func decodeJPEG(t *testing.T, buf *bytes.Buffer) image.Image {
	t.Helper()
	img, err := jpeg.Decode(buf)
	require.NoError(t, err)
	return img
}

func TestPrepareUploadKeepsSmallImages(t *testing.T) {
	out, err := PrepareUpload(pngOf(t, 40, 30))
	require.NoError(t, err)
	img := decodeJPEG(t, out)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestPrepareUploadShrinksLargeImages(t *testing.T) {
	out, err := PrepareUpload(pngOf(t, 4096, 1024))
	require.NoError(t, err)
	img := decodeJPEG(t, out)
	assert.Equal(t, MaxUploadEdge, img.Bounds().Dx())
	assert.Equal(t, 512, img.Bounds().Dy(), "aspect ratio is kept")
}

func TestPrepareAvatar(t *testing.T) {
	out, err := PrepareAvatar(pngOf(t, 300, 100))
	require.NoError(t, err)
	img := decodeJPEG(t, out)
	assert.Equal(t, AvatarEdge, img.Bounds().Dx())
	assert.Equal(t, AvatarEdge, img.Bounds().Dy())
}

func TestRejectsNonImages(t *testing.T) {
	_, err := PrepareUpload(strings.NewReader("definitely not an image"))
	assert.Error(t, err)
	_, err = PrepareAvatar(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCenterSquare(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 10))
	sq := centerSquare(img)
	assert.Equal(t, image.Rect(10, 0, 20, 10), sq.Bounds())
}
