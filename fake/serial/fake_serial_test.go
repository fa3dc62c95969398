package serial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeSerial(t *testing.T) {
	s := New()

	buf := make([]byte, 4)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	s.Feed([]byte{1, 2, 3})
	n, err = s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, buf[:n])

	_, err = s.Write([]byte("abc"))
	require.NoError(t, err)
	_, err = s.Write([]byte("de"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abcde"), s.Written())

	require.NoError(t, s.Close())
	_, err = s.Write([]byte("x"))
	assert.True(t, errors.Is(err, ErrClosed))
	_, err = s.Read(buf)
	assert.True(t, errors.Is(err, ErrClosed))
}
