package phash

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hhrutter/tiff"

	"github.com/nanoskript/touhou-index/internal/imageproc"
)

func init() {
	// doujinshi.org's archival dump occasionally ships TIFF covers; hhrutter's
	// tiff decoder is what pdfcpu itself relies on for TIFF-backed pages, so we
	// register it the same way image/jpeg and image/png self-register.
	image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
}

// Decode decodes a single raw thumbnail blob. An undecodable or empty blob
// is reported via the bool return, never an error: per the error handling
// design, an undecodable thumbnail silently yields no hashes rather than
// aborting the entry.
func Decode(data []byte) (image.Image, bool) {
	if len(data) == 0 {
		return nil, false
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	return img, true
}

// Variants expands a decoded base image into the ordered list of images
// whose hashes should be computed, per the producer rules in §4.2:
//
//  1. the original image;
//  2. a border-trimmed copy, if the trimmed bounding box is non-empty and
//     strictly smaller than the image;
//  3. for each image so far whose width exceeds its height: its left half,
//     a 90°-rotated copy, and a 270°-rotated copy.
func Variants(base image.Image) []image.Image {
	images := []image.Image{base}

	if trimmed, ok := imageproc.BorderTrim(base); ok {
		images = append(images, trimmed)
	}

	// Iterate a fixed snapshot: crops/rotations derived here are not
	// themselves re-examined for further landscape expansion.
	landscapeSources := make([]image.Image, 0, len(images))
	for _, img := range images {
		if imageproc.IsLandscape(img) {
			landscapeSources = append(landscapeSources, img)
		}
	}

	for _, img := range landscapeSources {
		images = append(images,
			imageproc.CropLeftHalf(img),
			imageproc.Rotate90(img),
			imageproc.Rotate270(img),
		)
	}

	return images
}

// HashesForThumbnails computes the de-duplicated, priority-ordered hash
// list for an entry's raw thumbnail blobs (first thumbnail preferred, per
// §3's Entry.thumbnails ordering). A thumbnail that fails to decode
// contributes no hashes; an entry none of whose thumbnails decode yields an
// empty slice, making it an orphan per §4.4.
func HashesForThumbnails(thumbnails [][]byte) []Hash {
	var hashes []Hash
	seen := make(map[Hash]bool)

	for _, data := range thumbnails {
		img, ok := Decode(data)
		if !ok {
			continue
		}

		for _, variant := range Variants(img) {
			h := Compute(variant)
			if seen[h] {
				continue
			}
			seen[h] = true
			hashes = append(hashes, h)
		}
	}

	return hashes
}
