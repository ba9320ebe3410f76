package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemZeroInitialized(t *testing.T) {
	m := NewMemWithRate(16, 0)
	out := make([]byte, 16)
	n, err := m.Read(0, out, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, make([]byte, 16), out)
}

func TestMemWriteThenReadRoundTrip(t *testing.T) {
	m := NewMemWithRate(16, 0)
	n, err := m.Write(4, []byte("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	out := make([]byte, 4)
	n, err = m.Read(4, out, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("abcd"), out)
}

func TestMemReadTruncatesAtDeviceEnd(t *testing.T) {
	m := NewMemWithRate(10, 0)
	out := make([]byte, 10)
	n, err := m.Read(6, out, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, n, "read past the end truncates instead of erroring")
}

func TestMemReadPastEndReturnsZero(t *testing.T) {
	m := NewMemWithRate(10, 0)
	out := make([]byte, 4)
	n, err := m.Read(20, out, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMemWritePastEndFails(t *testing.T) {
	m := NewMemWithRate(10, 0)
	n, err := m.Write(6, []byte("abcdefgh"), 8)
	assert.Error(t, err)
	assert.Equal(t, -1, n)
}

func TestMemSize(t *testing.T) {
	m := NewMemWithRate(123, 0)
	assert.Equal(t, 123, m.Size())
}
