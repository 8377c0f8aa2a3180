package audiocapture

import "math"

// smootherWindow is the moving-average span for UI level animation.
const smootherWindow = 6

// rmsLevel returns the root-mean-square amplitude of a block, normalized
// to [0, 1] against full-scale int16.
func rmsLevel(block []int16) float64 {
	if len(block) == 0 {
		return 0
	}
	var sum float64
	for _, s := range block {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum/float64(len(block))) / math.MaxInt16
}

// normalizeBlock converts a PCM block to float32 samples in [-1, 1].
func normalizeBlock(block []int16) []float32 {
	out := make([]float32, len(block))
	for i, s := range block {
		out[i] = float32(s) / 32768.0
	}
	return out
}

// levelSmoother is a fixed-window moving average over RMS levels. Not
// goroutine-safe; it is only touched from the capture callback.
type levelSmoother struct {
	values []float64
	pos    int
	filled int
}

func newLevelSmoother(window int) *levelSmoother {
	if window <= 0 {
		window = smootherWindow
	}
	return &levelSmoother{values: make([]float64, window)}
}

// push records a sample and returns the current smoothed value.
func (s *levelSmoother) push(v float64) float64 {
	s.values[s.pos] = v
	s.pos = (s.pos + 1) % len(s.values)
	if s.filled < len(s.values) {
		s.filled++
	}
	var sum float64
	for _, x := range s.values[:s.filled] {
		sum += x
	}
	return sum / float64(s.filled)
}

func (s *levelSmoother) reset() {
	s.pos = 0
	s.filled = 0
}
