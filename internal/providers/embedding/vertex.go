package embedding

import (
	"context"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

// VertexEmbedder calls the Vertex AI prediction API for one of the
// publisher text-embedding models.
type VertexEmbedder struct {
	client   *aiplatform.PredictionClient
	endpoint string
}

func NewVertexEmbedder(ctx context.Context, projectID, location, modelName string, opts ...option.ClientOption) (*VertexEmbedder, error) {
	if location == "" {
		location = "us-central1"
	}
	if modelName == "" {
		// multilingual: the same model must embed English and Hindi text
		modelName = "text-multilingual-embedding-002"
	}

	regional := option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location))
	c, err := aiplatform.NewPredictionClient(ctx, append([]option.ClientOption{regional}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &VertexEmbedder{
		client: c,
		endpoint: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
			projectID, location, modelName),
	}, nil
}

func (v *VertexEmbedder) Close() error { return v.client.Close() }

func (v *VertexEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v == nil || v.client == nil {
		return nil, ErrModelUnavailable
	}

	instance, err := structpb.NewValue(map[string]any{"content": text})
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:  v.endpoint,
		Instances: []*structpb.Value{instance},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.GetPredictions()) == 0 {
		return nil, ErrModelUnavailable
	}

	vec := embeddingFromPrediction(resp.GetPredictions()[0])
	if len(vec) == 0 {
		return nil, ErrModelUnavailable
	}
	return vec, nil
}

// embeddingFromPrediction pulls embeddings.values out of one prediction
// struct. Returns nil when the shape is absent; the getter chain tolerates
// nil at every level.
func embeddingFromPrediction(pred *structpb.Value) []float32 {
	values := pred.GetStructValue().GetFields()["embeddings"].
		GetStructValue().GetFields()["values"].
		GetListValue().GetValues()
	if len(values) == 0 {
		return nil
	}

	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v.GetNumberValue())
	}
	return out
}
