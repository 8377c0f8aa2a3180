package audiocapture

import (
	"math"
	"testing"
)

func TestRMSLevel(t *testing.T) {
	tests := []struct {
		name  string
		block []int16
		want  float64
	}{
		{"empty", nil, 0},
		{"silence", make([]int16, 100), 0},
		{"full_scale_square", []int16{32767, -32767, 32767, -32767}, 1.0},
		{"half_scale", []int16{16384, -16384}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rmsLevel(tt.block)
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("rmsLevel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelSmoother(t *testing.T) {
	s := newLevelSmoother(3)

	if got := s.push(0.9); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("first push = %v, want 0.9", got)
	}
	if got := s.push(0.3); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("second push = %v, want 0.6", got)
	}
	s.push(0.3)
	// Window is full; the oldest value rolls off.
	if got := s.push(0.3); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("rolled window = %v, want 0.3", got)
	}

	s.reset()
	if got := s.push(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("after reset = %v, want 0.5", got)
	}
}

func TestNormalizeBlock(t *testing.T) {
	got := normalizeBlock([]int16{0, -32768, 16384})
	want := []float32{0, -1, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}
