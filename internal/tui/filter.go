package tui

import (
	"github.com/sahilm/fuzzy"

	"filmdb/internal/domain"
)

// contentSource adapts a content slice for fuzzy matching on titles
type contentSource []domain.ContentRef

func (s contentSource) String(i int) string { return s[i].Title }
func (s contentSource) Len() int            { return len(s) }

// filterContent narrows items to fuzzy title matches, best matches first
func filterContent(query string, items []domain.ContentRef) []domain.ContentRef {
	matches := fuzzy.FindFrom(query, contentSource(items))
	out := make([]domain.ContentRef, len(matches))
	for i, match := range matches {
		out[i] = items[match.Index]
	}
	return out
}
