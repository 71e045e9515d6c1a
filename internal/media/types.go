package media

import (
	"fmt"
	"time"
)

const (
	// Decoded sample format shared by decode and encode.
	DefaultSampleRate = 44100
	DefaultChannels   = 2

	bytesPerSample = 2 // s16le
)

// Clip is one decoded audio source held fully in memory as interleaved
// signed 16-bit little-endian PCM. A Clip is read-only after decoding and
// safe to share across goroutines.
type Clip struct {
	SampleRate int
	Channels   int
	pcm        []byte
}

// NewClip wraps a raw PCM buffer. A trailing partial frame is dropped so
// every slice stays frame-aligned.
func NewClip(sampleRate, channels int, pcm []byte) *Clip {
	frame := channels * bytesPerSample
	pcm = pcm[:len(pcm)-len(pcm)%frame]
	return &Clip{
		SampleRate: sampleRate,
		Channels:   channels,
		pcm:        pcm,
	}
}

func (c *Clip) bytesPerSecond() int {
	return c.SampleRate * c.Channels * bytesPerSample
}

// Duration is the total length of the decoded audio.
func (c *Clip) Duration() time.Duration {
	return time.Duration(len(c.pcm)) * time.Second / time.Duration(c.bytesPerSecond())
}

// Size is the raw buffer size in bytes.
func (c *Clip) Size() int {
	return len(c.pcm)
}

// PCM returns the whole decoded buffer. Callers must not mutate it.
func (c *Clip) PCM() []byte {
	return c.pcm
}

// Slice returns the frame-aligned sample range [start, end), clamped to the
// buffer. The result aliases the clip's buffer; callers must not mutate it.
func (c *Clip) Slice(start, end time.Duration) []byte {
	frame := c.Channels * bytesPerSample
	from := c.byteOffset(start, frame)
	to := c.byteOffset(end, frame)
	if from > to {
		from = to
	}
	return c.pcm[from:to]
}

func (c *Clip) byteOffset(at time.Duration, frame int) int {
	if at < 0 {
		at = 0
	}
	off := int(int64(at) * int64(c.bytesPerSecond()) / int64(time.Second))
	off -= off % frame
	if off > len(c.pcm) {
		off = len(c.pcm)
	}
	return off
}

// EncodeError reports a failed encode of one output file.
type EncodeError struct {
	Dest string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Dest, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
