package imagesim

import (
	"image"

	"github.com/disintegration/imaging"
)

// BlurScore returns the variance of the Laplacian of img's grayscale
// version. Sharp images score high. Images wider or taller than maxSide
// are scaled down first; maxSide <= 0 keeps the full size.
func BlurScore(img image.Image, maxSide int) float64 {
	if b := img.Bounds(); maxSide > 0 && (b.Dx() > maxSide || b.Dy() > maxSide) {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Box)
	}
	gray := imaging.Grayscale(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	at := func(x, y int) float64 { return float64(gray.Pix[y*gray.Stride+x*4]) }
	var sum, sumSq float64
	n := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			l := at(x-1, y) + at(x+1, y) + at(x, y-1) + at(x, y+1) - 4*at(x, y)
			sum += l
			sumSq += l * l
			n++
		}
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

// IsBlurry opens path and reports whether its BlurScore is below threshold.
func IsBlurry(path string, threshold float64, maxSide int) (bool, float64, error) {
	img, err := Open(path)
	if err != nil {
		return false, 0, err
	}
	score := BlurScore(img, maxSide)
	return score < threshold, score, nil
}
