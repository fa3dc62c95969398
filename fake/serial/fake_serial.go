package serial

import (
	"bytes"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "fake/serial",
})

var ErrClosed = errors.New("port closed")

// FakeSerial is an in-memory serial port. Writes are kept for inspection, and
// reads return whatever was fed in. Like a real port opened with a minimum
// read size of zero, reading with nothing buffered returns immediately.
type FakeSerial struct {
	mu     sync.Mutex
	tx     bytes.Buffer
	rx     bytes.Buffer
	closed bool
}

func New() *FakeSerial {
	return &FakeSerial{}
}

func (s *FakeSerial) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	if s.rx.Len() == 0 {
		return 0, nil
	}

	n, err := s.rx.Read(p)
	log.Debugf("read %d bytes", n)
	return n, err
}

func (s *FakeSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	log.Debugf("write %d bytes", len(p))
	return s.tx.Write(p)
}

func (s *FakeSerial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Debugf("close")
	s.closed = true
	return nil
}

// Feed queues bytes to be returned by Read.
func (s *FakeSerial) Feed(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rx.Write(p)
}

// Written returns a copy of everything written so far.
func (s *FakeSerial) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.tx.Bytes()...)
}
