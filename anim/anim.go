// Package anim holds animation resources and their tick-based playback.
//
// Chunk layout, little endian:
//
//	count u16 | count × {delay u16 | loop u8 | frames u16 | frames × frame}
//	frame: offX i16 | offY i16 | w u16 | h u16 | imgLen u32 | img
package anim

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrIndexOutOfRange = errors.New("anim: animation index out of range")
	ErrTruncated       = errors.New("anim: truncated data")
)

type Frame struct {
	OffsetX int16
	OffsetY int16
	Width   uint16
	Height  uint16
	// Image is encoded image data handed to the renderer untouched.
	Image []byte
}

// Animation is a frame list plus playback state. FrameDelay is the number of
// ticks each frame stays on screen.
type Animation struct {
	Name       string
	FrameDelay int
	Loop       bool
	Frames     []Frame

	frame    int
	counter  int
	complete bool
}

// New creates an animation ready to play from frame zero.
func New(name string, delay int, loop bool, frames []Frame) *Animation {
	if delay <= 0 {
		delay = 1
	}
	return &Animation{Name: name, FrameDelay: delay, Loop: loop, Frames: frames}
}

// Update advances playback by one tick and reports whether the frame changed.
func (a *Animation) Update() bool {
	if a == nil || len(a.Frames) == 0 || a.complete {
		return false
	}
	a.counter++
	if a.counter < a.FrameDelay {
		return false
	}
	a.counter = 0

	if a.frame+1 >= len(a.Frames) {
		if a.Loop {
			a.frame = 0
			return true
		}
		a.complete = true
		return false
	}
	a.frame++
	return true
}

// Restart rewinds to the first frame.
func (a *Animation) Restart() {
	if a == nil {
		return
	}
	a.frame = 0
	a.counter = 0
	a.complete = false
}

// SetFrame jumps to frame n, clamped to the frame range.
func (a *Animation) SetFrame(n int) {
	if a == nil || len(a.Frames) == 0 {
		return
	}
	a.frame = max(0, min(n, len(a.Frames)-1))
	a.counter = 0
	a.complete = false
}

// FrameNumber is the zero-based index of the visible frame.
func (a *Animation) FrameNumber() int {
	if a == nil {
		return 0
	}
	return a.frame
}

func (a *Animation) NumberOfFrames() int {
	if a == nil {
		return 0
	}
	return len(a.Frames)
}

func (a *Animation) IsLastFrame() bool {
	return a != nil && len(a.Frames) > 0 && a.frame == len(a.Frames)-1
}

// Complete reports whether a non-looping animation has finished its last frame.
func (a *Animation) Complete() bool {
	return a != nil && a.complete
}

// Clone returns an independent playback of the same frames.
func (a *Animation) Clone() *Animation {
	if a == nil {
		return nil
	}
	return New(a.Name, a.FrameDelay, a.Loop, a.Frames)
}

type rawAnim struct {
	Delay  uint16
	Loop   uint8
	Frames uint16
}

type rawFrame struct {
	OffsetX int16
	OffsetY int16
	Width   uint16
	Height  uint16
	ImgLen  uint32
}

// DecodeChunk decodes the animation at index from a chunk body.
func DecodeChunk(name string, data []byte, index int) (*Animation, error) {
	r := bytes.NewReader(data)
	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("anim: read count: %w", err)
	}
	if index < 0 || index >= int(count) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, count)
	}

	for i := 0; i <= index; i++ {
		var ra rawAnim
		if err := binary.Read(r, binary.LittleEndian, &ra); err != nil {
			return nil, fmt.Errorf("anim: read animation %d: %w", i, err)
		}
		var frames []Frame
		for f := 0; f < int(ra.Frames); f++ {
			var rf rawFrame
			if err := binary.Read(r, binary.LittleEndian, &rf); err != nil {
				return nil, fmt.Errorf("anim: read animation %d frame %d: %w", i, f, err)
			}
			if int64(rf.ImgLen) > int64(r.Len()) {
				return nil, fmt.Errorf("%w: animation %d frame %d image of %d bytes", ErrTruncated, i, f, rf.ImgLen)
			}
			img := make([]byte, rf.ImgLen)
			if _, err := io.ReadFull(r, img); err != nil {
				return nil, fmt.Errorf("anim: read animation %d frame %d image: %w", i, f, err)
			}
			frames = append(frames, Frame{
				OffsetX: rf.OffsetX,
				OffsetY: rf.OffsetY,
				Width:   rf.Width,
				Height:  rf.Height,
				Image:   img,
			})
		}
		if i == index {
			return New(name, int(ra.Delay), ra.Loop != 0, frames), nil
		}
	}
	return nil, ErrIndexOutOfRange
}

// EncodeChunk writes animations in the layout DecodeChunk reads.
func EncodeChunk(anims ...*Animation) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(anims)))
	for _, a := range anims {
		var loop uint8
		if a.Loop {
			loop = 1
		}
		_ = binary.Write(&buf, binary.LittleEndian, rawAnim{
			Delay:  uint16(a.FrameDelay),
			Loop:   loop,
			Frames: uint16(len(a.Frames)),
		})
		for _, f := range a.Frames {
			_ = binary.Write(&buf, binary.LittleEndian, rawFrame{
				OffsetX: f.OffsetX,
				OffsetY: f.OffsetY,
				Width:   f.Width,
				Height:  f.Height,
				ImgLen:  uint32(len(f.Image)),
			})
			buf.Write(f.Image)
		}
	}
	return buf.Bytes()
}

// Frames is a helper building n blank frames of the given size.
func Frames(n int, w, h uint16) []Frame {
	out := make([]Frame, n)
	for i := range out {
		out[i] = Frame{Width: w, Height: h}
	}
	return out
}
