package settheory

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats/scalar"
)

const fourierPrecision = 4

// FourierMagnitudes returns |f1| to |f6| of the discrete Fourier transform
// of the set's pitch-class indicator vector. The magnitudes are invariant
// under transposition and inversion, and Z-related sets share them.
func FourierMagnitudes(s Set) [6]float64 {
	indicator := make([]float64, numPitchClasses)
	for _, pc := range s {
		indicator[mod12(pc)] = 1
	}

	spectrum := fft.FFTReal(indicator)

	var mags [6]float64
	for k := 1; k <= 6; k++ {
		mags[k-1] = scalar.Round(cmplx.Abs(spectrum[k]), fourierPrecision)
	}
	return mags
}
