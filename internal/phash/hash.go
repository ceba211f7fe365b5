// Package phash implements the perceptual-hash similarity engine: an 8x8
// DCT-derived 64-bit hash per image, and a BK-tree metric index over the
// Hamming distance between hashes (see bktree.go).
package phash

import (
	"image"
	"math"
	"math/bits"

	"golang.org/x/image/draw"
)

// Hash is a 64-bit perceptual hash (hash_size=8, 8x8 bits).
type Hash uint64

// Distance returns the Hamming distance between two hashes, i.e. the
// popcount of their XOR.
func Distance(a, b Hash) int {
	return bits.OnesCount64(uint64(a ^ b))
}

// RadiusForSimilarity converts a similarity in [0,1] to an integer Hamming
// radius over 64 bits: floor((1 - s) * 64).
func RadiusForSimilarity(similarity float64) int {
	return int(math.Floor((1.0 - similarity) * 64.0))
}

// dctSize is the side length of the intermediate greyscale grid the DCT is
// computed over; a classic 4x oversampling of the final 8x8 hash grid
// suppresses high-frequency aliasing before truncation.
const dctSize = 32

// hashSize is the side length of the retained low-frequency DCT block,
// giving hashSize*hashSize = 64 bits.
const hashSize = 8

// Compute derives the perceptual hash of img: greyscale, downsample to a
// dctSize x dctSize grid, take the 2D DCT-II, keep the top-left hashSize x
// hashSize low-frequency block, and set each bit
// according to whether that coefficient exceeds the block's median.
func Compute(img image.Image) Hash {
	gray := toGray(img, dctSize, dctSize)
	coeffs := dct2D(gray, dctSize)
	return quantize(coeffs)
}

// toGray resizes img to w x h using a high-quality scaler and converts it to
// a flat row-major slice of float64 luminance values in [0, 255].
func toGray(img image.Image, w, h int) []float64 {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = float64(dst.GrayAt(x, y).Y)
		}
	}
	return out
}

// dct2D computes the 2D DCT-II of an n x n row-major grid via separable 1D
// DCTs (rows then columns). n is small (32) so the direct O(n^3) summation
// is fast enough and avoids pulling in an FFT dependency for a one-shot
// per-thumbnail transform.
func dct2D(grid []float64, n int) []float64 {
	rows := make([]float64, n*n)
	for y := 0; y < n; y++ {
		dct1D(grid[y*n:y*n+n], rows[y*n:y*n+n], n)
	}

	col := make([]float64, n)
	colOut := make([]float64, n)
	out := make([]float64, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = rows[y*n+x]
		}
		dct1D(col, colOut, n)
		for y := 0; y < n; y++ {
			out[y*n+x] = colOut[y]
		}
	}
	return out
}

func dct1D(in, out []float64, n int) {
	for k := 0; k < n; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += in[i] * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}

		alpha := math.Sqrt(2.0 / float64(n))
		if k == 0 {
			alpha = math.Sqrt(1.0 / float64(n))
		}
		out[k] = alpha * sum
	}
}

// quantize keeps the top-left hashSize x hashSize block of coeffs and sets
// each of its 64 bits according to whether the coefficient is above the
// block's median, per the classic pHash construction.
func quantize(coeffs []float64) Hash {
	block := make([]float64, 0, hashSize*hashSize)
	for y := 0; y < hashSize; y++ {
		for x := 0; x < hashSize; x++ {
			block = append(block, coeffs[y*dctSize+x])
		}
	}

	median := medianOf(block)

	var hash Hash
	bit := 0
	for y := 0; y < hashSize; y++ {
		for x := 0; x < hashSize; x++ {
			if coeffs[y*dctSize+x] > median {
				hash |= 1 << uint(bit)
			}
			bit++
		}
	}
	return hash
}

func medianOf(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
