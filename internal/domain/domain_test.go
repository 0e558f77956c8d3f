package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Jane Doe", "jane_doe"},
		{"jane_doe", "jane_doe"},
		{"JANE\tDOE", "jane_doe"},
		{"bob", "bob"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeUsername(tt.raw))
	}
}

func TestNormalizeUsernameIdempotent(t *testing.T) {
	for _, raw := range []string{"Jane Doe", "A  B C", "already_normal"} {
		once := NormalizeUsername(raw)
		assert.Equal(t, once, NormalizeUsername(once))
	}
}

func TestActivityValidate(t *testing.T) {
	valid := Activity{Actor: "reddit", Verb: "post", Object: "https://example.com/p/1"}
	assert.NoError(t, valid.Validate())

	for _, a := range []Activity{
		{Verb: "post", Object: "https://example.com"},
		{Actor: "reddit", Object: "https://example.com"},
		{Actor: "reddit", Verb: "post"},
	} {
		err := a.Validate()
		assert.True(t, errors.Is(err, ErrMalformedInput), "expected malformed input, got %v", err)
	}
}

func TestActivityDedupID(t *testing.T) {
	withForeign := Activity{Object: "https://example.com/p/1", ForeignID: "abc123"}
	assert.Equal(t, "abc123", withForeign.DedupID())

	withoutForeign := Activity{Object: "https://example.com/p/1"}
	assert.Equal(t, "https://example.com/p/1", withoutForeign.DedupID())
}

func TestFeedKeyValidate(t *testing.T) {
	assert.NoError(t, SourceFeed("reddit").Validate())
	assert.NoError(t, UserFeed("jane_doe").Validate())

	for _, k := range []FeedKey{
		{Group: "", Name: "reddit"},
		{Group: "source", Name: ""},
		{Group: "source", Name: "red:dit"},
		{Group: "so:urce", Name: "reddit"},
	} {
		err := k.Validate()
		assert.True(t, errors.Is(err, ErrInvalidFeedKey), "key %v: expected invalid feed key, got %v", k, err)
	}
}

func TestFeedKeyString(t *testing.T) {
	assert.Equal(t, "source:bbc", SourceFeed("bbc").String())
	assert.Equal(t, "user:jane_doe", UserFeed("jane_doe").String())
}
