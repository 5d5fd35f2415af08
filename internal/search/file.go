package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// FileProvider loads search results from a local JSON file for offline/testing use.
// The file is either an array of {"title","url","snippet"} objects returned for
// every query, or an object mapping a keyword phrase to such an array; a query
// receives the entries of every phrase it contains.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	raw, err := f.entriesFor(bytes.TrimSpace(b), query)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		u := strings.TrimSpace(r.URL)
		if u == "" {
			continue
		}
		out = append(out, Result{
			Title:   resultTitle(r.Title, u),
			URL:     u,
			Snippet: r.Snippet,
			Source:  f.Name(),
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fileEntry struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

func (f *FileProvider) entriesFor(b []byte, query string) ([]fileEntry, error) {
	if len(b) > 0 && b[0] == '[' {
		var all []fileEntry
		if err := json.Unmarshal(b, &all); err != nil {
			return nil, fmt.Errorf("file provider: decode %s: %w", f.Path, err)
		}
		return all, nil
	}
	var byPhrase map[string][]fileEntry
	if err := json.Unmarshal(b, &byPhrase); err != nil {
		return nil, fmt.Errorf("file provider: decode %s: %w", f.Path, err)
	}
	// Map iteration order is random; sort keys so output is deterministic.
	keys := make([]string, 0, len(byPhrase))
	for k := range byPhrase {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []fileEntry
	for _, k := range keys {
		if k != "" && strings.Contains(query, k) {
			out = append(out, byPhrase[k]...)
		}
	}
	return out, nil
}
