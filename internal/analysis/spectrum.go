package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/cursorsim/internal/motion"
)

// Spectrum is a one-sided amplitude spectrum. Freqs[i] is in Hz and
// Amplitudes[i] in the sample's own units.
type Spectrum struct {
	Freqs      []float64
	Amplitudes []float64
}

// NewSpectrum transforms samples taken every dt seconds. The mean is removed
// first so the DC bin only reflects numerical noise.
func NewSpectrum(samples []float64, dt float64) Spectrum {
	n := len(samples)
	if n < 2 || dt <= 0 {
		return Spectrum{}
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range samples {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	half := n / 2
	s := Spectrum{
		Freqs:      make([]float64, half),
		Amplitudes: make([]float64, half),
	}
	for k := 0; k < half; k++ {
		s.Freqs[k] = float64(k) / (float64(n) * dt)
		s.Amplitudes[k] = cmplx.Abs(coeffs[k]) * 2 / float64(n)
	}
	return s
}

// Peak returns the strongest non-DC bin, or zeros for an empty spectrum.
func (s Spectrum) Peak() (freq, amplitude float64) {
	for k := 1; k < len(s.Amplitudes); k++ {
		if s.Amplitudes[k] > amplitude {
			freq, amplitude = s.Freqs[k], s.Amplitudes[k]
		}
	}
	return freq, amplitude
}

// Residual is position minus target along one axis, 0 for x and 1 for y.
// Non-finite samples become zero so one divergent frame does not poison the
// transform.
func Residual(frames []motion.Frame, axis int) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		d := f.Position.Sub(f.Target)
		v := d.X
		if axis != 0 {
			v = d.Y
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[i] = v
	}
	return out
}

// SampleInterval infers dt from frame timestamps.
func SampleInterval(frames []motion.Frame) float64 {
	if len(frames) < 2 {
		return 0
	}
	return (frames[len(frames)-1].Time - frames[0].Time) / float64(len(frames)-1)
}
