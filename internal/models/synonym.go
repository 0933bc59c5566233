package models

// SynonymEntry maps an English/Hindi keyword pair to its synonym sets.
// All strings are stored case-folded and trimmed; lookups must normalize
// tokens the same way. Entries are bulk-loaded offline and read-only to
// the engine.
type SynonymEntry struct {
	EnglishKeyword  string   `bson:"english_keyword" json:"english_keyword"`
	HindiKeyword    string   `bson:"hindi_keyword" json:"hindi_keyword"`
	EnglishSynonyms []string `bson:"english_synonyms" json:"english_synonyms"`
	HindiSynonyms   []string `bson:"hindi_synonyms" json:"hindi_synonyms"`
}
