package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/adammck/stride/player"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// LengthPrefixSize is the size of the big-endian length before each
	// payload.
	LengthPrefixSize = 4

	// MaxPayloadSize is far larger than any frame, and only guards against
	// reading garbage.
	MaxPayloadSize = 64 * 1024
)

var (
	ErrPartialFrame  = errors.New("partial frame")
	ErrFrameTooLarge = errors.New("frame too large")
)

// Frame is one setpoint for the tracking controller. The body is in the world
// frame; the feet are relative to the body, which is what the leg controllers
// track.
type Frame struct {
	Seq   uint32                     `msgpack:"seq"`
	T     float64                    `msgpack:"t"`
	Body  [3]float64                 `msgpack:"body"`
	Ori   [3]float64                 `msgpack:"ori"`
	Feet  [player.NumLegs][3]float64 `msgpack:"feet"`
	Swing [player.NumLegs]bool       `msgpack:"swing"`
	Last  bool                       `msgpack:"last"`
}

// NewFrame builds the frame for a state at time t.
func NewFrame(seq uint32, t float64, st player.State) Frame {
	ori := st.Base.Euler()
	f := Frame{
		Seq:   seq,
		T:     t,
		Body:  [3]float64{st.Base.Pos.X, st.Base.Pos.Y, st.Base.Pos.Z},
		Ori:   [3]float64{ori.Roll, ori.Pitch, ori.Yaw},
		Swing: st.Swing,
	}

	local := st.Base.Pose().ToLocal()
	for _, leg := range player.AllLegs {
		v := st.Feet[leg].MultiplyByMatrix44(local)
		f.Feet[leg] = [3]float64{v.X, v.Y, v.Z}
	}

	return f
}

// WriteFrame encodes a frame with msgpack and writes it with a length prefix.
func WriteFrame(w io.Writer, f Frame) error {
	payload, err := msgpack.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encoding frame %d: %w", f.Seq, err)
	}

	buf := make([]byte, LengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[LengthPrefixSize:], payload)

	_, err = w.Write(buf)
	return err
}

// ReadFrame reads one frame written by WriteFrame. It returns io.EOF if the
// stream ended cleanly between frames.
func ReadFrame(r io.Reader) (Frame, error) {
	var prefix [LengthPrefixSize]byte
	_, err := io.ReadFull(r, prefix[:])
	if err != nil {
		if err == io.EOF {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("%w: %v", ErrPartialFrame, err)
	}

	size := binary.BigEndian.Uint32(prefix[:])
	if size > MaxPayloadSize {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	payload := make([]byte, size)
	_, err = io.ReadFull(r, payload)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrPartialFrame, err)
	}

	var f Frame
	if err := msgpack.Unmarshal(payload, &f); err != nil {
		return Frame{}, fmt.Errorf("decoding frame: %w", err)
	}

	return f, nil
}
