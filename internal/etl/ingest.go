package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/providers/embedding"
	mongorepo "github.com/shramik-saathi/backend/internal/repositories/mongo"
	"github.com/shramik-saathi/backend/internal/services"
)

// Ingester loads curated CSV files into the knowledge base. FAQ rows are
// embedded before they are written; records that cannot be embedded are
// skipped so the ranker never sees them.
type Ingester struct {
	FAQs     mongorepo.FAQRepository
	Synonyms mongorepo.SynonymRepository
	Embedder embedding.Provider
	Logger   *logrus.Logger
}

func (in *Ingester) log() *logrus.Logger {
	if in.Logger != nil {
		return in.Logger
	}
	return logrus.New()
}

// IngestFAQs reads a CSV with columns ID, category, Question, answer_en,
// answer_hi, keywords_en, keywords_hi and upserts each row by question_id.
// Keyword cells hold comma-separated lists. Returns the number of rows
// written.
func (in *Ingester) IngestFAQs(ctx context.Context, path string) (int, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return 0, err
	}
	in.log().WithField("rows", len(rows)).Info("extracted FAQ rows")

	col, err := columnIndex(header, "ID", "category", "Question", "answer_en", "answer_hi", "keywords_en", "keywords_hi")
	if err != nil {
		return 0, err
	}

	written := 0
	for i, row := range rows {
		faq := &models.FAQ{
			QuestionID: strings.TrimSpace(row[col["ID"]]),
			Category:   strings.TrimSpace(row[col["category"]]),
			Question:   strings.TrimSpace(row[col["Question"]]),
			AnswerEN:   strings.TrimSpace(row[col["answer_en"]]),
			AnswerHI:   strings.TrimSpace(row[col["answer_hi"]]),
			KeywordsEN: splitList(row[col["keywords_en"]], false),
			KeywordsHI: splitList(row[col["keywords_hi"]], false),
		}
		if faq.QuestionID == "" {
			in.log().WithField("row", i+2).Warn("skipping FAQ row with empty ID")
			continue
		}

		text := services.EmbeddingText(faq)
		if text == "" {
			in.log().WithField("question_id", faq.QuestionID).Warn("skipping FAQ with no text to embed")
			continue
		}

		vec, err := in.Embedder.Embed(ctx, text)
		if err != nil {
			return written, fmt.Errorf("embed FAQ %s: %w", faq.QuestionID, err)
		}
		faq.Embedding = vec

		if err := in.FAQs.Upsert(ctx, faq); err != nil {
			return written, fmt.Errorf("upsert FAQ %s: %w", faq.QuestionID, err)
		}
		written++
	}

	in.log().WithField("written", written).Info("FAQ ingest complete")
	return written, nil
}

// IngestSynonyms reads a CSV with columns english_keyword, hindi_keyword,
// english_synonym, hindi_synonym and upserts each row by its keyword pair.
// Synonym cells hold comma-separated lists; everything is lower-cased to
// match how queries are tokenized.
func (in *Ingester) IngestSynonyms(ctx context.Context, path string) (int, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return 0, err
	}
	in.log().WithField("rows", len(rows)).Info("extracted synonym rows")

	col, err := columnIndex(header, "english_keyword", "hindi_keyword", "english_synonym", "hindi_synonym")
	if err != nil {
		return 0, err
	}

	written := 0
	for i, row := range rows {
		entry := &models.SynonymEntry{
			EnglishKeyword:  strings.ToLower(strings.TrimSpace(row[col["english_keyword"]])),
			HindiKeyword:    strings.ToLower(strings.TrimSpace(row[col["hindi_keyword"]])),
			EnglishSynonyms: splitList(row[col["english_synonym"]], true),
			HindiSynonyms:   splitList(row[col["hindi_synonym"]], true),
		}
		if entry.EnglishKeyword == "" || entry.HindiKeyword == "" {
			in.log().WithField("row", i+2).Warn("skipping synonym row with empty keyword")
			continue
		}

		if err := in.Synonyms.Upsert(ctx, entry); err != nil {
			return written, fmt.Errorf("upsert synonyms for %q: %w", entry.EnglishKeyword, err)
		}
		written++
	}

	in.log().WithField("written", written).Info("synonym ingest complete")
	return written, nil
}

func readCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err = r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		// Short rows happen with trailing empty cells; pad to header width.
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", name)
		}
	}
	return idx, nil
}

func splitList(cell string, lower bool) []string {
	var out []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lower {
			part = strings.ToLower(part)
		}
		out = append(out, part)
	}
	return out
}
