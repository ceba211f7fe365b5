package phash

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func checkerImage(w, h, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func TestComputeIsDeterministic(t *testing.T) {
	img := checkerImage(64, 64, 8)
	a := Compute(img)
	b := Compute(img)
	assert.Equal(t, a, b)
}

func TestComputeDistinguishesDifferentImages(t *testing.T) {
	a := Compute(checkerImage(64, 64, 8))
	b := Compute(solidImage(64, 64, color.White))
	assert.NotEqual(t, a, b)
	assert.Greater(t, Distance(a, b), 0)
}

func TestComputeSolidImagesAreIdentical(t *testing.T) {
	a := Compute(solidImage(32, 32, color.White))
	b := Compute(solidImage(64, 64, color.White))
	assert.Equal(t, a, b, "a uniform field hashes the same regardless of source resolution")
}

func TestComputeToleratesSmallPerturbation(t *testing.T) {
	base := checkerImage(64, 64, 8)

	perturbed := image.NewRGBA(base.Bounds())
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			r, g, b, a := base.At(x, y).RGBA()
			if x == 0 && y == 0 {
				// Nudge a single corner pixel; the low-frequency DCT block
				// that the hash is derived from should be insensitive to
				// isolated high-frequency noise.
				perturbed.Set(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b>>8) ^ 0x10, A: uint8(a >> 8)})
				continue
			}
			perturbed.Set(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}

	a := Compute(base)
	b := Compute(perturbed)
	assert.LessOrEqual(t, Distance(a, b), 4)
}
