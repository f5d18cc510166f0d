// File: internal/services/chat/accumulator.go
package chat

import (
	"sort"
	"strings"
	"unicode"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// NormalizeKey lowercases name and drops everything but letters, digits and
// the combining marks that belong to them. "Acme Co." and "ACME CO" share
// the key "acmeco"; names in other scripts keep a non-empty key.
func NormalizeKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Merge appends the incoming vendors whose normalized name is not yet in
// the set, fills missing ids from the normalized name and re-sorts the whole
// set by rating, highest first. Vendors without a rating rank as 0 and equal
// ratings keep their relative order. Neither input slice is modified, and
// merging the same batch twice yields the same set.
//
// A name made only of punctuation normalizes to "", which is a key like any
// other: the first such vendor is kept and later ones are duplicates of it.
func Merge(existing, incoming []domain.Vendor) []domain.Vendor {
	merged := make([]domain.Vendor, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)

	seen := make(map[string]struct{}, len(merged))
	for _, v := range merged {
		seen[NormalizeKey(v.Name)] = struct{}{}
	}

	for _, v := range incoming {
		key := NormalizeKey(v.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, v)
	}

	for i := range merged {
		if merged[i].ID == "" {
			merged[i].ID = NormalizeKey(merged[i].Name)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RatingValue() > merged[j].RatingValue()
	})
	return merged
}
