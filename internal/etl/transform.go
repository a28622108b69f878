package etl

import (
	"strings"
	"unicode"

	"github.com/ignite/fitness-api/internal/domain"
)

// Cleaning thresholds. Messages keep the creation-time minimum; the cleaned
// program snapshot is stricter than creation on purpose (see DESIGN.md).
const (
	minCleanMessageLen     = 10
	minCleanDescriptionLen = 20
)

// transformContacts de-duplicates and normalizes the extracted contact set.
// Order of operations matters and mirrors the reported counts:
// duplicate emails are dropped first (first occurrence by extraction order
// wins, no case folding), then rows whose email lacks an "@", then names are
// trimmed and title-cased, then rows whose trimmed message is too short.
func transformContacts(in []domain.Contact) ([]domain.Contact, domain.EntityStats) {
	stats := domain.EntityStats{Original: len(in)}

	seen := make(map[string]bool, len(in))
	out := make([]domain.Contact, 0, len(in))
	for _, c := range in {
		if seen[c.Email] {
			continue
		}
		seen[c.Email] = true

		if !strings.Contains(c.Email, "@") {
			continue
		}
		c.Name = titleCase(c.Name)
		if len([]rune(strings.TrimSpace(c.Message))) < minCleanMessageLen {
			continue
		}
		out = append(out, c)
	}

	stats.Cleaned = len(out)
	stats.Removed = stats.Original - stats.Cleaned
	return out, stats
}

// transformPrograms de-duplicates by exact name (first occurrence wins),
// normalizes names to trimmed title case, and drops programs whose trimmed
// description falls below the cleaned-snapshot threshold.
func transformPrograms(in []domain.Program) ([]domain.Program, domain.EntityStats) {
	stats := domain.EntityStats{Original: len(in)}

	seen := make(map[string]bool, len(in))
	out := make([]domain.Program, 0, len(in))
	for _, p := range in {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true

		p.Name = titleCase(p.Name)
		if len([]rune(strings.TrimSpace(p.Description))) < minCleanDescriptionLen {
			continue
		}
		out = append(out, p)
	}

	stats.Cleaned = len(out)
	stats.Removed = stats.Original - stats.Cleaned
	return out, stats
}

// titleCase lowercases each whitespace-separated word and capitalizes its
// first rune, collapsing surrounding whitespace in the process.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
