package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/wderue/portfolio-backend/errs"
	"github.com/wderue/portfolio-backend/models"
)

// Filter is a transient query descriptor over the project catalog. An empty
// filter matches every project. Non-empty fields combine as an AND across
// categories; within one category the selected values are an OR.
type Filter struct {
	Search string                          `json:"search,omitempty"`
	Tags   map[models.TagCategory][]string `json:"tags,omitempty"`
}

// ParseFilter converts raw query parameters into a normalized Filter. Each
// category parameter is a comma-separated token list; tokens outside the
// category's vocabulary are dropped silently so stale URL state from an older
// vocabulary degrades instead of failing the whole request. Values are
// deduplicated and sorted so equivalent inputs produce the same Filter.
func ParseFilter(params url.Values) Filter {
	f := Filter{
		Search: strings.TrimSpace(params.Get("search")),
	}

	for _, category := range models.Categories {
		raw := params.Get(string(category))
		if raw == "" {
			continue
		}

		seen := make(map[string]bool)
		var values []string
		for _, token := range strings.Split(raw, ",") {
			token = strings.TrimSpace(token)
			if token == "" || seen[token] {
				continue
			}
			if !models.ValidTagValue(category, token) {
				continue
			}
			seen[token] = true
			values = append(values, token)
		}

		if len(values) > 0 {
			sort.Strings(values)
			if f.Tags == nil {
				f.Tags = make(map[models.TagCategory][]string)
			}
			f.Tags[category] = values
		}
	}

	return f
}

// Validate checks a programmatically built Filter. ParseFilter output is
// always valid; this guards Filters constructed directly by callers.
func (f Filter) Validate() error {
	for category, values := range f.Tags {
		if _, err := models.ParseCategory(string(category)); err != nil {
			return errs.NewInvalidFilterError(fmt.Sprintf("unknown tag category %q", category))
		}
		for _, v := range values {
			if !models.ValidTagValue(category, v) {
				return errs.NewInvalidFilterError(fmt.Sprintf("value %q is not in the %s vocabulary", v, category))
			}
		}
	}
	return nil
}

// IsEmpty reports whether the filter matches every project.
func (f Filter) IsEmpty() bool {
	if f.Search != "" {
		return false
	}
	for _, values := range f.Tags {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// CacheKey returns a canonical serialization of the filter. Categories appear
// in their fixed order and values sorted, so equivalent filters collide on the
// same cache entry.
func (f Filter) CacheKey() string {
	var b strings.Builder
	b.WriteString("projects:search=")
	b.WriteString(strings.ToLower(f.Search))
	for _, category := range models.Categories {
		values := f.Tags[category]
		if len(values) == 0 {
			continue
		}
		sorted := make([]string, len(values))
		copy(sorted, values)
		sort.Strings(sorted)
		b.WriteString("|")
		b.WriteString(string(category))
		b.WriteString("=")
		b.WriteString(strings.Join(sorted, ","))
	}
	return b.String()
}
