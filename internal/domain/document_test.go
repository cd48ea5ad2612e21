package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "object", input: `{"title":"Plumbing","price":40}`},
		{name: "object with whitespace", input: "  \n{\"a\":1}"},
		{name: "empty object", input: `{}`},
		{name: "array", input: `[1,2]`, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
		{name: "string", input: `"x"`, wantErr: true},
		{name: "empty", input: ``, wantErr: true},
		{name: "truncated", input: `{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, err := ParseDocument([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDocument))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, doc)
		})
	}
}

func TestDocumentClone(t *testing.T) {
	t.Parallel()

	orig := Document{
		"title": "Cleaning",
		"tags":  []any{"home", map[string]any{"k": "v"}},
		"owner": map[string]any{"email": "a@x.com"},
	}
	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone["owner"].(map[string]any)["email"] = "b@x.com"
	clone["tags"].([]any)[0] = "office"

	assert.Equal(t, "a@x.com", orig["owner"].(map[string]any)["email"])
	assert.Equal(t, "home", orig["tags"].([]any)[0])
	assert.Nil(t, Document(nil).Clone())
}

func TestDocumentWithout(t *testing.T) {
	t.Parallel()

	doc := Document{FieldID: "abc", "title": "x"}
	out := doc.Without(FieldID)

	assert.Equal(t, Document{"title": "x"}, out)
	assert.Contains(t, doc, FieldID, "original must be untouched")
}

func TestDocumentMatches(t *testing.T) {
	t.Parallel()

	doc := Document{
		FieldEmail:           "a@x.com",
		FieldReviewServiceID: "svc1",
		"rating":             float64(5),
		"owner":              map[string]any{"email": "a@x.com"},
	}

	assert.True(t, doc.Matches(Document{}))
	assert.True(t, doc.Matches(Document{FieldEmail: "a@x.com"}))
	assert.True(t, doc.Matches(Document{FieldEmail: "a@x.com", FieldReviewServiceID: "svc1"}))
	assert.False(t, doc.Matches(Document{FieldEmail: "b@x.com"}))
	assert.False(t, doc.Matches(Document{"missing": "x"}))
	assert.False(t, doc.Matches(Document{"owner": "a@x.com"}))
}

func TestStringField(t *testing.T) {
	t.Parallel()

	doc := Document{FieldEmail: "a@x.com", "n": float64(1)}

	s, ok := doc.StringField(FieldEmail)
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", s)

	_, ok = doc.StringField("n")
	assert.False(t, ok)
}
