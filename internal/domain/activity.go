package domain

import "fmt"

// Activity is the canonical normalized record of one piece of external
// content. Actor identifies the originating source ("reddit", "bbc"), Verb is
// the semantic action fixed per source type ("post", "article") and Object is
// the canonical URL of the underlying content. ForeignID, when present, is the
// source-native unique id and takes precedence over Object for deduplication.
type Activity struct {
	Actor     string         `json:"actor"`
	Verb      string         `json:"verb"`
	Object    string         `json:"object"`
	Title     string         `json:"title,omitempty"`
	ForeignID string         `json:"foreignId,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Validate checks the Activity invariant: non-empty actor, verb and object.
func (a *Activity) Validate() error {
	if a.Actor == "" || a.Verb == "" || a.Object == "" {
		return fmt.Errorf("%w: activity requires actor, verb and object", ErrMalformedInput)
	}
	return nil
}

// DedupID returns the identity the storage layer deduplicates on: the
// foreign id when the source provides one, the object URL otherwise.
func (a *Activity) DedupID() string {
	if a.ForeignID != "" {
		return a.ForeignID
	}
	return a.Object
}

// FeedKey identifies a feed as (group, name), e.g. ("source", "reddit") or
// ("user", "jane_doe").
type FeedKey struct {
	Group string `json:"group"`
	Name  string `json:"name"`
}

// SourceFeed returns the key of the append-only feed holding one external
// source's activities.
func SourceFeed(name string) FeedKey {
	return FeedKey{Group: "source", Name: name}
}

// UserFeed returns the key of a user's composed feed.
func UserFeed(username string) FeedKey {
	return FeedKey{Group: "user", Name: username}
}

func (k FeedKey) Validate() error {
	if k.Group == "" || k.Name == "" {
		return fmt.Errorf("%w: feed key requires group and name", ErrInvalidFeedKey)
	}
	for _, s := range []string{k.Group, k.Name} {
		for _, r := range s {
			if r == ':' {
				return fmt.Errorf("%w: %q must not contain ':'", ErrInvalidFeedKey, s)
			}
		}
	}
	return nil
}

func (k FeedKey) String() string {
	return k.Group + ":" + k.Name
}
