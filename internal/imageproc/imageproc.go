// Package imageproc implements the thumbnail variant transforms used by the
// perceptual hash store (border trimming, half-crops, rotations), using only
// the standard library's image packages; the downscaling for the hash itself
// happens in internal/phash via golang.org/x/image/draw.
package imageproc

import (
	"image"
	"image/color"
	"image/draw"
)

// BorderTrim returns the bounding box of the colour difference between img
// and a single-colour background sampled from pixel (0,0), cropped to that
// box. The second return value is false when the bounding box is empty
// (uniform image) or equal to the full image (nothing to trim).
//
// This mirrors a common thumbnail artifact: galleries and store listings pad
// covers with a solid letterbox colour that would otherwise perturb the DCT.
func BorderTrim(img image.Image) (image.Image, bool) {
	bounds := img.Bounds()
	bg := img.At(bounds.Min.X, bounds.Min.Y)

	box := diffBoundingBox(img, bg)
	if box.Empty() {
		return nil, false
	}
	if box == bounds {
		return nil, false
	}

	return cropTo(img, box), true
}

// diffBoundingBox finds the smallest rectangle containing every pixel that
// differs from bg by more than a small tolerance, to absorb lossy
// JPEG/compression noise around an otherwise-solid border.
func diffBoundingBox(img image.Image, bg color.Color) image.Rectangle {
	bounds := img.Bounds()
	bgR, bgG, bgB, bgA := bg.RGBA()

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false

	const tolerance = 16 << 8 // scaled to the 16-bit channel range returned by RGBA()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if absDiff(r, bgR) > tolerance || absDiff(g, bgG) > tolerance ||
				absDiff(b, bgB) > tolerance || absDiff(a, bgA) > tolerance {
				found = true
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x+1 > maxX {
					maxX = x + 1
				}
				if y+1 > maxY {
					maxY = y + 1
				}
			}
		}
	}

	if !found {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func cropTo(img image.Image, box image.Rectangle) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(out, out.Bounds(), img, box.Min, draw.Src)
	return out
}

// CropLeftHalf returns the left half of img, from (0,0) to (w/2,h). Intended
// for landscape spreads where the left page carries a distinct composition
// from the right, per the thumbnail variant generation order.
func CropLeftHalf(img image.Image) image.Image {
	bounds := img.Bounds()
	half := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+bounds.Dx()/2, bounds.Max.Y)
	return cropTo(img, half)
}

// Rotate90 rotates img 90 degrees clockwise.
func Rotate90(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(h-1-y, x, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// Rotate270 rotates img 90 degrees counter-clockwise (270 clockwise).
func Rotate270(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(y, w-1-x, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// IsLandscape reports whether img is wider than it is tall.
func IsLandscape(img image.Image) bool {
	bounds := img.Bounds()
	return bounds.Dx() > bounds.Dy()
}
