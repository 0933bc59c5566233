package embedding

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestEmbeddingFromPrediction(t *testing.T) {
	t.Run("well-formed prediction yields the vector", func(t *testing.T) {
		pred, err := structpb.NewValue(map[string]any{
			"embeddings": map[string]any{
				"values":     []any{0.25, -0.5, 1.0},
				"statistics": map[string]any{"token_count": 4},
			},
		})
		require.NoError(t, err)

		vec := embeddingFromPrediction(pred)
		require.Equal(t, []float32{0.25, -0.5, 1.0}, vec)
	})

	t.Run("missing embeddings field yields nil", func(t *testing.T) {
		pred, err := structpb.NewValue(map[string]any{"content": "text"})
		require.NoError(t, err)
		require.Nil(t, embeddingFromPrediction(pred))
	})

	t.Run("empty values list yields nil", func(t *testing.T) {
		pred, err := structpb.NewValue(map[string]any{
			"embeddings": map[string]any{"values": []any{}},
		})
		require.NoError(t, err)
		require.Nil(t, embeddingFromPrediction(pred))
	})

	t.Run("nil prediction yields nil", func(t *testing.T) {
		require.Nil(t, embeddingFromPrediction(nil))
	})
}

func TestEmbedNilReceiver(t *testing.T) {
	var v *VertexEmbedder
	_, err := v.Embed(t.Context(), "text")
	require.ErrorIs(t, err, ErrModelUnavailable)
}
