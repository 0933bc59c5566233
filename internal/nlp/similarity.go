package nlp

import (
	"math"

	"github.com/shramik-saathi/backend/internal/models"
)

// CosineSimilarity returns dot(a,b) / (||a||*||b||) in [-1, 1].
// An empty vector or a zero norm yields 0.0 ("no similarity"), never an
// error. Vectors of different lengths are compared over the shorter prefix.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}

	var normA, normB float64
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (normA * normB)
}

// RankFAQs scans candidates in the order given (the FAQ store's natural
// fetch order) and returns the best match with its score. Candidates
// without an embedding are skipped. The running best is only replaced on a
// strictly greater score, so on exact ties the earliest candidate wins and
// the result is deterministic for a fixed candidate order.
//
// Returns (nil, -1) when no candidate had an embedding.
func RankFAQs(queryVec []float32, candidates []models.FAQ) (*models.FAQ, float64) {
	var best *models.FAQ
	highest := -1.0

	for i := range candidates {
		if !candidates[i].HasEmbedding() {
			continue
		}
		score := CosineSimilarity(queryVec, candidates[i].Embedding)
		if score > highest {
			highest = score
			best = &candidates[i]
		}
	}

	return best, highest
}
