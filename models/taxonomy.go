package models

import "fmt"

// TagCategory names one of the five independent tag dimensions a project can
// carry. Each category has its own closed vocabulary of allowed values.
type TagCategory string

const (
	CategoryLanguage TagCategory = "language"
	CategoryDatabase TagCategory = "database"
	CategoryBackend  TagCategory = "backend"
	CategoryFrontend TagCategory = "frontend"
	CategoryDevOps   TagCategory = "devops"
)

// Categories lists all tag categories in their canonical order. The order is
// load-bearing for cache keys, so it must stay stable.
var Categories = []TagCategory{
	CategoryLanguage,
	CategoryDatabase,
	CategoryBackend,
	CategoryFrontend,
	CategoryDevOps,
}

var vocabularies = map[TagCategory][]string{
	CategoryLanguage: {"Python", "TypeScript", "JavaScript", "Rust"},
	CategoryDatabase: {"Postgresql", "MongoDB", "Informix", "SQLite"},
	CategoryBackend:  {"FastAPI", "Fastify", "ExpressJs"},
	CategoryFrontend: {"React", "NextJs", "Tanstack", "Svelte", "SvelteKit"},
	CategoryDevOps:   {"Docker", "GithubActions"},
}

// ParseCategory validates a raw category name.
func ParseCategory(s string) (TagCategory, error) {
	c := TagCategory(s)
	if _, ok := vocabularies[c]; !ok {
		return "", fmt.Errorf("unknown tag category %q", s)
	}
	return c, nil
}

// Vocabulary returns the closed set of allowed values for a category. The
// returned slice is a copy; callers may reorder it.
func Vocabulary(category TagCategory) []string {
	values := vocabularies[category]
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// ValidTagValue reports whether value belongs to the category's vocabulary.
func ValidTagValue(category TagCategory, value string) bool {
	for _, v := range vocabularies[category] {
		if v == value {
			return true
		}
	}
	return false
}
