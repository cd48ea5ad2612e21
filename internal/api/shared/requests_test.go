package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    domain.Document
		wantErr bool
	}{
		{
			name: "object",
			body: `{"name":"Plumbing","price":40,"tags":["home"]}`,
			want: domain.Document{"name": "Plumbing", "price": float64(40), "tags": []any{"home"}},
		},
		{
			name: "empty object",
			body: `{}`,
			want: domain.Document{},
		},
		{name: "array", body: `[{"a":1}]`, wantErr: true},
		{name: "scalar", body: `"x"`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "malformed", body: `{"a":`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/addService", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			doc, err := DecodeDocument(w, req)
			if tc.wantErr {
				assert.True(t, errors.Is(err, domain.ErrInvalidDocument), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, doc)
		})
	}
}

func TestDecodeDocumentTooLarge(t *testing.T) {
	body := `{"blob":"` + strings.Repeat("a", int(MaxBodyBytes)) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/addService", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, err := DecodeDocument(w, req)
	assert.True(t, errors.Is(err, domain.ErrInvalidDocument))
	assert.Contains(t, err.Error(), "exceeds")
}

func TestPathParam(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		rawPath string
		want    string
		wantErr bool
	}{
		{name: "plain", path: "/services/a@x.com", want: "a@x.com"},
		{name: "percent-encoded", path: "/services/a%40x.com", want: "a@x.com"},
		{name: "encoded space", path: "/services/a%20b@x.com", want: "a b@x.com"},
		{name: "escaped percent is decoded once", path: "/services/a%2540x.com", want: "a%40x.com"},
		{name: "undecodable", path: "/services/a@x.com", rawPath: "/services/a%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			var gotErr error
			r := chi.NewRouter()
			r.Get("/services/{email}", func(w http.ResponseWriter, req *http.Request) {
				got, gotErr = PathParam(req, "email")
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.rawPath != "" {
				req.URL.RawPath = tt.rawPath
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			if tt.wantErr {
				require.Error(t, gotErr)
				assert.True(t, errors.Is(gotErr, domain.ErrInvalidParameter))
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
