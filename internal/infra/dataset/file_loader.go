package dataset

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvarezg/recipe-search/internal/domain/ingest"
	"github.com/calvarezg/recipe-search/internal/domain/search"
)

// FileLoader reads the recipe corpus from a local JSON lines file.
type FileLoader struct {
	path string
}

// NewFileLoader constructs the loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load decodes the dataset file.
func (l *FileLoader) Load(_ context.Context) ([]search.Document, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	docs, err := decodeDocuments(f)
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", l.path, err)
	}
	return docs, nil
}

// decodeDocuments parses one JSON document per line, skipping blanks.
func decodeDocuments(r io.Reader) ([]search.Document, error) {
	var docs []search.Document
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var doc search.Document
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if strings.TrimSpace(doc.Link) == "" {
			return nil, fmt.Errorf("line %d: recipe link is required", line)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

var _ ingest.Loader = (*FileLoader)(nil)
