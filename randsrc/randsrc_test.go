package randsrc

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChaChaIsDeterministicForTheSameSeed(t *testing.T) {
	buf1 := make([]byte, 256)
	_, err := io.ReadFull(ChaCha(1), buf1)
	require.NoError(t, err)

	buf2 := make([]byte, 256)
	_, err = io.ReadFull(ChaCha(1), buf2)
	require.NoError(t, err)

	require.True(t, bytes.Equal(buf1, buf2))
}

func TestChaChaDiffersAcrossSeeds(t *testing.T) {
	buf1 := make([]byte, 256)
	_, err := io.ReadFull(ChaCha(1), buf1)
	require.NoError(t, err)

	buf2 := make([]byte, 256)
	_, err = io.ReadFull(ChaCha(2), buf2)
	require.NoError(t, err)

	require.False(t, bytes.Equal(buf1, buf2))
}

func TestChaChaStreamIsNotAllZero(t *testing.T) {
	buf := make([]byte, 256)
	_, err := io.ReadFull(ChaCha(7), buf)
	require.NoError(t, err)
	require.False(t, bytes.Equal(buf, make([]byte, 256)))
}

func TestChaChaSuccessiveReadsContinueTheStream(t *testing.T) {
	r := ChaCha(3)
	part1 := make([]byte, 32)
	part2 := make([]byte, 32)
	_, err := io.ReadFull(r, part1)
	require.NoError(t, err)
	_, err = io.ReadFull(r, part2)
	require.NoError(t, err)

	whole := make([]byte, 64)
	_, err = io.ReadFull(ChaCha(3), whole)
	require.NoError(t, err)

	require.True(t, bytes.Equal(whole[:32], part1))
	require.True(t, bytes.Equal(whole[32:], part2))
}
