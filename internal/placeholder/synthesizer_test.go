package placeholder

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_WritesImageFile(t *testing.T) {
	s, err := NewSynthesizer()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	path, err := s.Synthesize("Front of House", "12 Main St, Town")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSynthesize_MemoizesByTitleAndSubtitle(t *testing.T) {
	s, err := NewSynthesizer()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	first, err := s.Synthesize("Kitchen Area", "12 Main St")
	require.NoError(t, err)
	second, err := s.Synthesize("Kitchen Area", "12 Main St")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := s.Synthesize("Kitchen Area", "34 Elm Ave")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestClose_RemovesGeneratedFiles(t *testing.T) {
	s, err := NewSynthesizer()
	require.NoError(t, err)

	path, err := s.Synthesize("Garage Area", "Unknown")
	require.NoError(t, err)

	require.NoError(t, s.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
