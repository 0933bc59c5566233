package services

import (
	"context"
	"strings"

	mongorepo "github.com/shramik-saathi/backend/internal/repositories/mongo"
	"github.com/shramik-saathi/backend/internal/utils"
)

// SynonymExpander widens a raw query with related keywords before it is
// embedded, to improve recall across English and Hindi.
type SynonymExpander interface {
	Expand(ctx context.Context, queryText, language string) ([]string, error)
}

type synonymExpander struct {
	synonyms mongorepo.SynonymRepository
}

func NewSynonymExpander(synonyms mongorepo.SynonymRepository) SynonymExpander {
	return &synonymExpander{synonyms: synonyms}
}

// Expand tokenizes on whitespace, case-folds, and looks tokens up against
// the language-selected synonym sets. Every matched entry contributes both
// keywords and both synonym sets, so a Hindi synonym hit surfaces the
// English keyword and vice versa. The result is deduplicated, keeps
// first-seen order, and drops empty strings. No match is not an error.
func (s *synonymExpander) Expand(ctx context.Context, queryText, language string) ([]string, error) {
	const op = "SynonymExpander.Expand"

	var tokens []string
	for _, w := range strings.Fields(queryText) {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	entries, err := s.synonyms.FindBySynonyms(ctx, language, tokens)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to query synonym store", err)
	}

	seen := make(map[string]struct{})
	var expanded []string
	add := func(term string) {
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		expanded = append(expanded, term)
	}

	for _, e := range entries {
		add(e.EnglishKeyword)
		add(e.HindiKeyword)
		for _, syn := range e.EnglishSynonyms {
			add(syn)
		}
		for _, syn := range e.HindiSynonyms {
			add(syn)
		}
	}

	return expanded, nil
}
