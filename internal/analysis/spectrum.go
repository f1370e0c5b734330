// Package analysis extracts orbital characteristics from recorded
// coordinate series.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the positive-frequency bins
// of the series.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)

	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod estimates the strongest period, in seconds, of a
// series sampled every dt seconds. The DC bin is ignored. Returns 0
// when the series is too short or has no nonzero component.
func DominantPeriod(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	ps := PowerSpectrum(data)

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	freq := float64(maxIdx) / (float64(len(data)) * dt)
	return 1 / freq
}
