// Package stream plays a trajectory out to the tracking controller, one
// setpoint frame per tick.
package stream

import (
	"fmt"
	"io"
	"time"

	"github.com/adammck/stride/player"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "stream",
})

type Stream struct {
	sp *player.Spliner
	w  io.Writer

	// When the first frame was sent. Trajectory time is measured from here,
	// not from Boot, so a slow start doesn't skip the beginning.
	start time.Time
	seq   uint32
	done  bool
}

func New(sp *player.Spliner, w io.Writer) *Stream {
	return &Stream{
		sp: sp,
		w:  w,
	}
}

// Boot checks that there is a trajectory to play.
func (s *Stream) Boot() error {
	if _, err := s.sp.GetSplinedState(0); err != nil {
		return fmt.Errorf("stream: %w", err)
	}

	log.Infof("streaming %.2fs trajectory over %d segments", s.sp.GetTotalTime(), s.sp.SegmentCount())
	return nil
}

// Tick sends the setpoint for now. Once the end of the trajectory has been
// sent, it does nothing.
func (s *Stream) Tick(now time.Time) error {
	if s.done {
		return nil
	}

	if s.start.IsZero() {
		s.start = now
	}

	t := now.Sub(s.start).Seconds()
	total := s.sp.GetTotalTime()
	if t >= total {
		t = total
		s.done = true
	}

	st, err := s.sp.GetSplinedState(t)
	if err != nil {
		return err
	}

	f := NewFrame(s.seq, t, st)
	f.Last = s.done

	err = WriteFrame(s.w, f)
	if err != nil {
		log.Warnf("error writing frame %d: %s", s.seq, err)
		return fmt.Errorf("writing frame %d: %w", s.seq, err)
	}

	s.seq++
	if s.done {
		log.Infof("sent final frame after %d frames", s.seq)
	}

	return nil
}

// Done returns true once the final frame has been sent.
func (s *Stream) Done() bool {
	return s.done
}
