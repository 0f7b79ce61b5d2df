package openai

import (
	"testing"

	"github.com/poiesic/hansard/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDimension(t *testing.T) {
	vectors := [][]float32{{1, 2, 3}, {4, 5, 6}}

	t.Run("zero disables check", func(t *testing.T) {
		assert.NoError(t, checkDimension([][]float32{{1}, {1, 2}}, 0))
	})

	t.Run("matching dimension", func(t *testing.T) {
		assert.NoError(t, checkDimension(vectors, 3))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := checkDimension(vectors, 4)
		require.Error(t, err)
		assert.ErrorIs(t, err, ai.ErrUnexpectedDimension)
	})
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	config := ai.NewConfig(ai.WithEmbeddingModel(""))
	_, err := NewProvider(config)
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	config := ai.NewConfig(ai.WithEmbeddingHost("http://localhost:11434"))
	provider, err := NewProvider(config)
	require.NoError(t, err)
	assert.NotNil(t, provider.Embedder())
	assert.NoError(t, provider.Close())
	assert.Equal(t, "http://localhost:11434/v1", config.EmbeddingHost)
}
