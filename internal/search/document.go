package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for document input.
var (
	ErrInvalidDocuments = errors.New("invalid documents")
	ErrMissingID        = errors.New("document without id")
)

// DocID is a document reference. JSON input may spell it as a string or a number.
type DocID string

// UnmarshalJSON accepts "id": "a" and "id": 1.
func (d *DocID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = DocID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*d = DocID(n.String())
	return nil
}

// Document is one searchable page.
type Document struct {
	ID    DocID  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Href  string `json:"href"`
}

// StoreEntry is what a search hit resolves to.
type StoreEntry struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// ParseDocuments decodes a JSON array of documents. Every document needs an id.
func ParseDocuments(data []byte) ([]Document, error) {
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocuments, err)
	}
	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: document %d", ErrMissingID, i)
		}
	}
	return docs, nil
}
