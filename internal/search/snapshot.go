package search

// SnapshotVersion identifies the snapshot layout.
const SnapshotVersion = "1"

// Snapshot is a portable copy of the inverted index.
type Snapshot struct {
	Version       string      `json:"version"`
	Ref           string      `json:"ref"`
	Fields        []FieldInfo `json:"fields"`
	DocumentCount int         `json:"documentCount"`

	// InvertedIndex maps term to field to document id.
	InvertedIndex map[string]map[string]map[string]Posting `json:"invertedIndex"`

	// FieldLengths maps field to document id to the number of terms.
	FieldLengths map[string]map[string]int `json:"fieldLengths"`
}

// FieldInfo names an indexed field and its boost.
type FieldInfo struct {
	Name  string  `json:"name"`
	Boost float64 `json:"boost"`
}

// Posting records where a term occurs in one field of one document.
type Posting struct {
	TF        int   `json:"tf"`
	Positions []int `json:"positions"`
}

// analyzedDoc holds the postings of one document by field.
type analyzedDoc map[string]analyzedField

type analyzedField struct {
	length int
	terms  map[string][]int // term to positions
}

func analyze(a Analyzer, text string) analyzedField {
	f := analyzedField{terms: make(map[string][]int)}
	if text == "" {
		return f
	}
	for _, tok := range a.Analyze([]byte(text)) {
		term := string(tok.Term)
		f.terms[term] = append(f.terms[term], tok.Position)
		f.length++
	}
	return f
}

// Snapshot returns the current inverted index.
func (x *Index) Snapshot() *Snapshot {
	x.mu.RLock()
	defer x.mu.RUnlock()

	s := &Snapshot{
		Version: SnapshotVersion,
		Ref:     "id",
		Fields: []FieldInfo{
			{Name: FieldTitle, Boost: x.opts.TitleBoost},
			{Name: FieldBody, Boost: 1},
		},
		DocumentCount: len(x.docs),
		InvertedIndex: make(map[string]map[string]map[string]Posting),
		FieldLengths: map[string]map[string]int{
			FieldTitle: {},
			FieldBody:  {},
		},
	}
	for id, doc := range x.docs {
		for field, f := range doc {
			s.FieldLengths[field][id] = f.length
			for term, positions := range f.terms {
				byField, ok := s.InvertedIndex[term]
				if !ok {
					byField = make(map[string]map[string]Posting)
					s.InvertedIndex[term] = byField
				}
				byDoc, ok := byField[field]
				if !ok {
					byDoc = make(map[string]Posting)
					byField[field] = byDoc
				}
				byDoc[id] = Posting{TF: len(positions), Positions: positions}
			}
		}
	}
	return s
}
