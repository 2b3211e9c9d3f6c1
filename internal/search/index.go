package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"go.uber.org/zap"

	"github.com/alnah/go-catalogue/internal/logging"
)

// Field names and defaults.
const (
	FieldTitle = "title"
	FieldBody  = "body"

	DefaultTitleBoost = 10
	DefaultLimit      = 10
)

// ErrIndex indicates the underlying index failed.
var ErrIndex = errors.New("search index failed")

// Options configures an Index.
type Options struct {
	// TitleBoost weighs title matches against body matches. Zero selects
	// DefaultTitleBoost.
	TitleBoost float64

	// StripHTML indexes the text content of bodies instead of their markup.
	StripHTML bool

	// Logger receives indexing diagnostics. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns the catalogue defaults.
func DefaultOptions() Options {
	return Options{TitleBoost: DefaultTitleBoost, StripHTML: true}
}

// Analyzer splits text into terms.
type Analyzer interface {
	Analyze(input []byte) analysis.TokenStream
}

// Hit is one search result.
type Hit struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Href  string  `json:"href"`
	Score float64 `json:"score"`
}

// Index is an in-memory full-text index over catalogue documents.
// It is safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	idx      bleve.Index
	analyzer Analyzer
	opts     Options
	logger   *zap.Logger
	store    map[string]StoreEntry
	docs     map[string]analyzedDoc
}

// New creates an empty index.
func New(opts Options) (*Index, error) {
	if opts.TitleBoost <= 0 {
		opts.TitleBoost = DefaultTitleBoost
	}
	logger := logging.Nop(opts.Logger)

	idx, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndex, err)
	}
	analyzer := idx.Mapping().AnalyzerNamed(en.AnalyzerName)
	if analyzer == nil {
		_ = idx.Close()
		return nil, fmt.Errorf("%w: analyzer %q not registered", ErrIndex, en.AnalyzerName)
	}

	return &Index{
		idx:      idx,
		analyzer: analyzer,
		opts:     opts,
		logger:   logger,
		store:    make(map[string]StoreEntry),
		docs:     make(map[string]analyzedDoc),
	}, nil
}

func newMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = en.AnalyzerName
	text.Store = false
	text.IncludeTermVectors = true

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(FieldTitle, text)
	doc.AddFieldMappingsAt(FieldBody, text)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = en.AnalyzerName
	return m
}

// Add indexes docs. A document whose id is already indexed replaces it.
// On error the index is left unchanged.
func (x *Index) Add(docs ...Document) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	type staged struct {
		doc   analyzedDoc
		entry StoreEntry
	}
	pending := make(map[string]staged, len(docs))
	batch := x.idx.NewBatch()
	for _, d := range docs {
		if d.ID == "" {
			return ErrMissingID
		}
		id := string(d.ID)
		body := d.Body
		if x.opts.StripHTML {
			body = PlainText(body)
		}
		fields := map[string]string{FieldTitle: d.Title, FieldBody: body}
		if err := batch.Index(id, fields); err != nil {
			return fmt.Errorf("%w: document %s: %v", ErrIndex, id, err)
		}
		pending[id] = staged{
			doc: analyzedDoc{
				FieldTitle: analyze(x.analyzer, d.Title),
				FieldBody:  analyze(x.analyzer, body),
			},
			entry: StoreEntry{Title: d.Title, Href: d.Href},
		}
	}
	if err := x.idx.Batch(batch); err != nil {
		return fmt.Errorf("%w: %v", ErrIndex, err)
	}
	for id, p := range pending {
		x.docs[id] = p.doc
		x.store[id] = p.entry
	}
	x.logger.Debug("indexed documents", zap.Int("count", len(docs)), zap.Int("total", len(x.store)))
	return nil
}

// Len returns the number of indexed documents.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.store)
}

// Store returns a copy of the id to {title, href} mapping.
func (x *Index) Store() map[string]StoreEntry {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make(map[string]StoreEntry, len(x.store))
	for id, e := range x.store {
		out[id] = e
	}
	return out
}

// Search returns up to limit documents matching q, best first. Title
// matches are boosted by Options.TitleBoost. A limit of zero or less
// selects DefaultLimit.
func (x *Index) Search(ctx context.Context, q string, limit int) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	title := bleve.NewMatchQuery(q)
	title.SetField(FieldTitle)
	title.SetBoost(x.opts.TitleBoost)
	body := bleve.NewMatchQuery(q)
	body.SetField(FieldBody)

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(title, body), limit, 0, false)
	res, err := x.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndex, err)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()
	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		e := x.store[h.ID]
		hits = append(hits, Hit{ID: h.ID, Title: e.Title, Href: e.Href, Score: h.Score})
	}
	return hits, nil
}

// Export is the serialized form of an index.
type Export struct {
	Index *Snapshot             `json:"index"`
	Store map[string]StoreEntry `json:"store"`
}

// Export returns the snapshot and the store.
func (x *Index) Export() *Export {
	return &Export{Index: x.Snapshot(), Store: x.Store()}
}

// MarshalJSON encodes the index as {"index": snapshot, "store": {...}}.
func (x *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.Export())
}

// Close releases the underlying index.
func (x *Index) Close() error {
	if err := x.idx.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIndex, err)
	}
	return nil
}

// Build parses a JSON array of documents and indexes them in a new Index.
func Build(data []byte, opts Options) (*Index, error) {
	docs, err := ParseDocuments(data)
	if err != nil {
		return nil, err
	}
	x, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := x.Add(docs...); err != nil {
		_ = x.Close()
		return nil, err
	}
	return x, nil
}

// CreateIndex builds an index from a JSON array of documents and returns
// its serialized form. Each call starts from an empty index.
func CreateIndex(data []byte, opts Options) ([]byte, error) {
	x, err := Build(data, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = x.Close() }()
	return json.Marshal(x)
}
