package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	fsys := fstest.MapFS{"tex.png": {Data: buf.Bytes()}}
	w, h, pix, err := LoadPNG(fsys, "tex.png")
	require.NoError(t, err)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, pix)

	_, _, _, err = LoadPNG(fsys, "nope.png")
	assert.Error(t, err)

	fsys["bad.png"] = &fstest.MapFile{Data: []byte("not a png")}
	_, _, _, err = LoadPNG(fsys, "bad.png")
	assert.ErrorContains(t, err, "decode png")
}

func TestPixelsRepacksSubImages(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 4, 4))
	big.Set(2, 2, color.RGBA{1, 2, 3, 4})
	sub := big.SubImage(image.Rect(2, 2, 3, 3))

	w, h, pix := Pixels(sub)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, []byte{1, 2, 3, 4}, pix)
}
