package audiocapture

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"
)

// EncodeWAV serializes mono 16-bit samples into a RIFF/WAVE payload at the
// given sample rate.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	dataSize := len(samples) * 2

	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	// RIFF header
	buf.WriteString("RIFF")
	writeUint32LE(buf, uint32(36+dataSize))
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	writeUint32LE(buf, 16)
	writeUint16LE(buf, 1) // PCM
	writeUint16LE(buf, 1) // mono
	writeUint32LE(buf, uint32(sampleRate))
	writeUint32LE(buf, uint32(sampleRate*2)) // byte rate
	writeUint16LE(buf, 2)                    // block align
	writeUint16LE(buf, 16)                   // bits per sample

	// data chunk
	buf.WriteString("data")
	writeUint32LE(buf, uint32(dataSize))
	for _, s := range samples {
		writeInt16LE(buf, s)
	}

	return buf.Bytes()
}

// DecodeWAV parses a payload produced by EncodeWAV back into samples and
// the sample rate. Used to verify captures round-trip losslessly.
func DecodeWAV(payload []byte) ([]int16, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(payload))
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("audiocapture: not a valid WAV payload")
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("audiocapture: decode WAV: %w", err)
	}
	samples := make([]int16, len(pcm.Data))
	for i, v := range pcm.Data {
		samples[i] = int16(v)
	}
	return samples, pcm.Format.SampleRate, nil
}

func writeUint16LE(w *bytes.Buffer, v uint16) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
}

func writeUint32LE(w *bytes.Buffer, v uint32) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
	w.WriteByte(byte(v >> 16))
	w.WriteByte(byte(v >> 24))
}

func writeInt16LE(w *bytes.Buffer, v int16) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(uint16(v) >> 8))
}
