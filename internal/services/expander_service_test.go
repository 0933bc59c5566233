package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shramik-saathi/backend/internal/models"
)

type stubSynonymRepo struct {
	entries   []models.SynonymEntry
	err       error
	gotLang   string
	gotTokens []string
	callsMade int
}

func (s *stubSynonymRepo) FindBySynonyms(_ context.Context, language string, tokens []string) ([]models.SynonymEntry, error) {
	s.callsMade++
	s.gotLang = language
	s.gotTokens = tokens
	return s.entries, s.err
}

func (s *stubSynonymRepo) Upsert(_ context.Context, _ *models.SynonymEntry) error { return nil }

func TestSynonymExpanderExpand(t *testing.T) {
	ctx := context.Background()

	t.Run("tokens are case-folded before lookup", func(t *testing.T) {
		repo := &stubSynonymRepo{}
		exp := NewSynonymExpander(repo)

		_, err := exp.Expand(ctx, "  Minimum WAGE  ", models.LanguageEN)
		require.NoError(t, err)
		require.Equal(t, models.LanguageEN, repo.gotLang)
		require.Equal(t, []string{"minimum", "wage"}, repo.gotTokens)
	})

	t.Run("matched entries contribute both languages", func(t *testing.T) {
		repo := &stubSynonymRepo{entries: []models.SynonymEntry{{
			EnglishKeyword:  "wage",
			HindiKeyword:    "मज़दूरी",
			EnglishSynonyms: []string{"salary", "pay"},
			HindiSynonyms:   []string{"वेतन"},
		}}}
		exp := NewSynonymExpander(repo)

		terms, err := exp.Expand(ctx, "wage", models.LanguageEN)
		require.NoError(t, err)
		require.Equal(t, []string{"wage", "मज़दूरी", "salary", "pay", "वेतन"}, terms)
	})

	t.Run("duplicates keep first-seen order", func(t *testing.T) {
		repo := &stubSynonymRepo{entries: []models.SynonymEntry{
			{EnglishKeyword: "wage", EnglishSynonyms: []string{"pay"}},
			{EnglishKeyword: "pay", EnglishSynonyms: []string{"wage", "salary"}},
		}}
		exp := NewSynonymExpander(repo)

		terms, err := exp.Expand(ctx, "wage pay", models.LanguageEN)
		require.NoError(t, err)
		require.Equal(t, []string{"wage", "pay", "salary"}, terms)
	})

	t.Run("empty strings in entries are dropped", func(t *testing.T) {
		repo := &stubSynonymRepo{entries: []models.SynonymEntry{
			{EnglishKeyword: "wage", HindiKeyword: "", EnglishSynonyms: []string{"", "pay"}},
		}}
		exp := NewSynonymExpander(repo)

		terms, err := exp.Expand(ctx, "wage", models.LanguageEN)
		require.NoError(t, err)
		require.Equal(t, []string{"wage", "pay"}, terms)
	})

	t.Run("blank query skips the lookup", func(t *testing.T) {
		repo := &stubSynonymRepo{}
		exp := NewSynonymExpander(repo)

		terms, err := exp.Expand(ctx, "   ", models.LanguageEN)
		require.NoError(t, err)
		require.Empty(t, terms)
		require.Zero(t, repo.callsMade)
	})

	t.Run("no match is not an error", func(t *testing.T) {
		exp := NewSynonymExpander(&stubSynonymRepo{})

		terms, err := exp.Expand(ctx, "unmatched words", models.LanguageHI)
		require.NoError(t, err)
		require.Empty(t, terms)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		exp := NewSynonymExpander(&stubSynonymRepo{err: errors.New("mongo down")})

		_, err := exp.Expand(ctx, "wage", models.LanguageEN)
		require.Error(t, err)
	})
}
