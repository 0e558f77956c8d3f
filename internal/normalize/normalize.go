// Package normalize converts raw source-specific items into canonical
// Activity records. All source-type-specific knowledge lives in the mapping
// tables below; adding a source type means adding one table entry.
package normalize

import (
	"fmt"

	"feedhub/internal/domain"
)

// SourceType names one external content source. Closed set.
type SourceType string

const (
	Reddit SourceType = "reddit"
	NYT    SourceType = "nyt"
	BBC    SourceType = "bbc"
)

// SourceTypes returns every known source type.
func SourceTypes() []SourceType {
	return []SourceType{Reddit, NYT, BBC}
}

// Known reports whether st has a mapping table.
func Known(st SourceType) bool {
	_, ok := mappings[st]
	return ok
}

// mapping describes how one source type's raw fields become Activity fields.
// Each field lists raw-key aliases because a source's pull API and its webhook
// bridge do not always name fields identically; the first present alias wins.
type mapping struct {
	verb        string
	object      []string
	title       []string
	foreignID   []string
	needForeign bool
	// extras maps extension field name -> raw-key aliases, carried through
	// opaquely.
	extras map[string][]string
}

var mappings = map[SourceType]mapping{
	Reddit: {
		verb:        "post",
		object:      []string{"url"},
		title:       []string{"title"},
		foreignID:   []string{"id"},
		needForeign: true,
		extras: map[string][]string{
			"subreddit": {"subreddit"},
			"thumbnail": {"thumbnail"},
			"author":    {"author"},
			"url":       {"url"},
		},
	},
	NYT: {
		verb:      "article",
		object:    []string{"url", "articleUrl"},
		title:     []string{"title"},
		foreignID: nil,
		extras: map[string][]string{
			"abstract": {"abstract", "blurb"},
			"date":     {"published_date", "PublishedDate"},
			"author":   {"author"},
			"section":  {"section"},
		},
	},
	BBC: {
		verb:      "article",
		object:    []string{"link"},
		title:     []string{"title"},
		foreignID: nil,
		extras: map[string][]string{
			"abstract": {"contentSnippet", "blurb"},
			"date":     {"isoDate", "date"},
		},
	},
}

// Normalize converts one raw item of the given source type into an Activity.
// Pure: no I/O, and identical input always yields an identical Activity. The
// only failure is a missing required field, reported as ErrMalformedInput.
func Normalize(st SourceType, raw map[string]any) (domain.Activity, error) {
	m, ok := mappings[st]
	if !ok {
		return domain.Activity{}, fmt.Errorf("%w: unknown source type %q", domain.ErrMalformedInput, st)
	}

	object := first(raw, m.object)
	if object == "" {
		return domain.Activity{}, missing(st, m.object[0])
	}
	title := first(raw, m.title)
	if title == "" {
		return domain.Activity{}, missing(st, m.title[0])
	}

	activity := domain.Activity{
		Actor:  string(st),
		Verb:   m.verb,
		Object: object,
		Title:  title,
	}

	if len(m.foreignID) > 0 {
		activity.ForeignID = first(raw, m.foreignID)
		if m.needForeign && activity.ForeignID == "" {
			return domain.Activity{}, missing(st, m.foreignID[0])
		}
	}

	for name, aliases := range m.extras {
		for _, key := range aliases {
			if v, ok := raw[key]; ok && v != nil && v != "" {
				if activity.Extra == nil {
					activity.Extra = make(map[string]any)
				}
				activity.Extra[name] = v
				break
			}
		}
	}

	return activity, nil
}

func missing(st SourceType, key string) error {
	return fmt.Errorf("%w: %s item missing %q", domain.ErrMalformedInput, st, key)
}

// first returns the first non-empty string value among the aliased raw keys.
func first(raw map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
