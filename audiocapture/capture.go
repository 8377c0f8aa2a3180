// Package audiocapture records microphone audio for one push-to-talk
// session at a time: mono, 16-bit signed PCM at a fixed sample rate.
package audiocapture

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// ErrAlreadyRunning is returned when Start is called on an open stream.
// The caller must Stop before starting again.
var ErrAlreadyRunning = errors.New("audiocapture: already running")

// DeviceError reports a failure to open or operate the input device.
// The recorder's state is unchanged when Start returns one.
type DeviceError struct {
	Device string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audiocapture: device %q: %v", e.Device, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// minBlockFrames floors the block size so a tiny configured block duration
// cannot degrade into per-sample callbacks.
const minBlockFrames = 80

// LevelFunc receives a smoothed RMS level in [0, 1].
type LevelFunc func(level float64)

// WaveformFunc receives one captured block normalized to [-1, 1].
type WaveformFunc func(samples []float32, sampleRate int)

// Config carries the capture parameters.
type Config struct {
	DeviceName    string        // empty selects the default input device
	SampleRate    int           // default 16000
	GainDB        float64       // linear multiplier 10^(dB/20) applied per block
	BlockDuration time.Duration // default 20ms
}

// Recorder owns a live input stream while a session is active and
// accumulates raw PCM blocks until EncodedBytes is called.
type Recorder struct {
	cfg Config

	mu      sync.Mutex
	stream  inputStream
	blocks  [][]int16
	frames  int
	onLevel LevelFunc
	onWave  WaveformFunc

	smoother *levelSmoother

	// openStream is swapped in tests to avoid a real device.
	openStream func(blockSize int, cb func([]int16)) (inputStream, error)
}

// inputStream is the slice of *portaudio.Stream the recorder drives.
type inputStream interface {
	Start() error
	Stop() error
	Close() error
}

// NewRecorder creates a recorder. The stream is not opened until Start.
func NewRecorder(cfg Config) *Recorder {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.BlockDuration <= 0 {
		cfg.BlockDuration = 20 * time.Millisecond
	}
	r := &Recorder{
		cfg:      cfg,
		smoother: newLevelSmoother(smootherWindow),
	}
	r.openStream = r.openInputStream
	return r
}

// OnLevel registers the level observer. Forwarding is best-effort and must
// not be relied on for correctness.
func (r *Recorder) OnLevel(fn LevelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onLevel = fn
}

// OnWaveform registers the waveform observer.
func (r *Recorder) OnWaveform(fn WaveformFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onWave = fn
}

// GainMultiplier returns the linear multiplier for the configured dB gain.
func (r *Recorder) GainMultiplier() float64 {
	return math.Pow(10, r.cfg.GainDB/20)
}

// Start clears the block buffer and opens the input stream. It returns
// ErrAlreadyRunning if a stream is open, or a *DeviceError if the stream
// cannot be opened; in both cases state is left unchanged.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream != nil {
		return ErrAlreadyRunning
	}

	blockSize := int(float64(r.cfg.SampleRate) * r.cfg.BlockDuration.Seconds())
	if blockSize < minBlockFrames {
		blockSize = minBlockFrames
	}

	stream, err := r.openStream(blockSize, r.capture)
	if err != nil {
		return &DeviceError{Device: r.deviceLabel(), Err: err}
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return &DeviceError{Device: r.deviceLabel(), Err: err}
	}

	r.blocks = nil
	r.frames = 0
	r.smoother.reset()
	r.stream = stream
	slog.Info("audio stream started",
		"device", r.deviceLabel(),
		"sample_rate", r.cfg.SampleRate,
		"block_size", blockSize)
	return nil
}

// Stop closes the stream. Calling Stop on a stopped recorder is a no-op.
// The device handle is released on every exit path.
func (r *Recorder) Stop() {
	r.mu.Lock()
	stream := r.stream
	r.stream = nil
	frames := r.frames
	r.mu.Unlock()

	if stream == nil {
		return
	}
	if err := stream.Stop(); err != nil {
		slog.Warn("stop audio stream", "error", err)
	}
	if err := stream.Close(); err != nil {
		slog.Warn("close audio stream", "error", err)
	}
	slog.Info("audio stream stopped", "frames", frames)
}

// Reset discards buffered samples without touching the stream state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = nil
	r.frames = 0
}

// Running reports whether a stream is open.
func (r *Recorder) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stream != nil
}

// EncodedBytes serializes the captured blocks, in arrival order, into a
// mono 16-bit WAV payload. It returns nil when nothing was captured.
func (r *Recorder) EncodedBytes() []byte {
	r.mu.Lock()
	total := 0
	for _, b := range r.blocks {
		total += len(b)
	}
	samples := make([]int16, 0, total)
	for _, b := range r.blocks {
		samples = append(samples, b...)
	}
	r.mu.Unlock()

	if len(samples) == 0 {
		return nil
	}
	return EncodeWAV(samples, r.cfg.SampleRate)
}

// capture runs on the audio subsystem's thread for every incoming block.
// It must stay cheap: gain, clamp, append, then best-effort observer calls.
func (r *Recorder) capture(in []int16) {
	block := make([]int16, len(in))
	gain := r.GainMultiplier()
	if gain != 1.0 {
		for i, s := range in {
			v := float64(s) * gain
			switch {
			case v > math.MaxInt16:
				v = math.MaxInt16
			case v < math.MinInt16:
				v = math.MinInt16
			}
			block[i] = int16(v)
		}
	} else {
		copy(block, in)
	}

	r.mu.Lock()
	r.blocks = append(r.blocks, block)
	r.frames += len(block)
	onLevel, onWave := r.onLevel, r.onWave
	r.mu.Unlock()

	if onLevel != nil {
		onLevel(r.smoother.push(rmsLevel(block)))
	}
	if onWave != nil {
		onWave(normalizeBlock(block), r.cfg.SampleRate)
	}
}

func (r *Recorder) deviceLabel() string {
	if r.cfg.DeviceName == "" {
		return "default"
	}
	return r.cfg.DeviceName
}

func (r *Recorder) openInputStream(blockSize int, cb func([]int16)) (inputStream, error) {
	dev, err := resolveDevice(r.cfg.DeviceName)
	if err != nil {
		return nil, err
	}
	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = 1
	params.SampleRate = float64(r.cfg.SampleRate)
	params.FramesPerBuffer = blockSize
	return portaudio.OpenStream(params, cb)
}
