// Package imagesim scores images for blur and pairwise similarity.
package imagesim

import (
	"fmt"
	"image"
	"math"

	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
)

// Similarity methods.
const (
	MethodCosine = "cosine"
	MethodPHash  = "phash"
)

// Default thresholds, overridable through configuration.
const (
	DefaultSimilarity       = 0.9
	DefaultBlurThreshold    = 30.0
	DefaultNotSimilarCutoff = 10
	DefaultBlurMaxSide      = 1024
	vectorSide              = 32
)

// Vector is a flattened grayscale thumbnail.
type Vector = []float32

// CosineSimilarity computes cosine similarity between two vectors.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Open loads an image, applying its EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return img, nil
}

// Thumbnail returns img as a mean-centered side x side grayscale vector.
func Thumbnail(img image.Image, side int) Vector {
	small := imaging.Grayscale(imaging.Resize(img, side, side, imaging.Box))
	v := make(Vector, 0, side*side)
	var sum float64
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			p := float32(small.Pix[y*small.Stride+x*4])
			v = append(v, p)
			sum += float64(p)
		}
	}
	mean := float32(sum / float64(len(v)))
	for i := range v {
		v[i] -= mean
	}
	return v
}

// Comparer decides whether two image files show the same scene. Decoded
// images are cached per path.
type Comparer struct {
	method    string
	threshold float64
	vectors   map[string]Vector
	hashes    map[string]*goimagehash.ImageHash
}

// NewComparer returns a Comparer for method, which must be MethodCosine or MethodPHash.
func NewComparer(method string, threshold float64) (*Comparer, error) {
	if method == "" {
		method = MethodCosine
	}
	if method != MethodCosine && method != MethodPHash {
		return nil, fmt.Errorf("unknown similarity method %q", method)
	}
	return &Comparer{
		method:    method,
		threshold: threshold,
		vectors:   make(map[string]Vector),
		hashes:    make(map[string]*goimagehash.ImageHash),
	}, nil
}

// Score returns the similarity of two files in [-1, 1], 1 being identical.
func (c *Comparer) Score(a, b string) (float64, error) {
	if c.method == MethodPHash {
		ha, err := c.hash(a)
		if err != nil {
			return 0, err
		}
		hb, err := c.hash(b)
		if err != nil {
			return 0, err
		}
		d, err := ha.Distance(hb)
		if err != nil {
			return 0, fmt.Errorf("hash distance: %w", err)
		}
		return 1 - 2*float64(d)/64, nil
	}

	va, err := c.vector(a)
	if err != nil {
		return 0, err
	}
	vb, err := c.vector(b)
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(va, vb), nil
}

// Similar reports whether Score reaches the threshold.
func (c *Comparer) Similar(a, b string) (bool, error) {
	s, err := c.Score(a, b)
	if err != nil {
		return false, err
	}
	return s >= c.threshold, nil
}

// Forget drops the cached data for path.
func (c *Comparer) Forget(path string) {
	delete(c.vectors, path)
	delete(c.hashes, path)
}

func (c *Comparer) vector(path string) (Vector, error) {
	if v, ok := c.vectors[path]; ok {
		return v, nil
	}
	img, err := Open(path)
	if err != nil {
		return nil, err
	}
	v := Thumbnail(img, vectorSide)
	c.vectors[path] = v
	return v, nil
}

func (c *Comparer) hash(path string) (*goimagehash.ImageHash, error) {
	if h, ok := c.hashes[path]; ok {
		return h, nil
	}
	img, err := Open(path)
	if err != nil {
		return nil, err
	}
	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("perception hash: %w", err)
	}
	c.hashes[path] = h
	return h, nil
}
