package shared

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/servicehub-api/internal/domain"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes int64 = 1 << 20

// DecodeDocument reads the request body as a JSON object.
// Non-object bodies, malformed JSON and oversized bodies all yield
// domain.ErrInvalidDocument.
func DecodeDocument(w http.ResponseWriter, r *http.Request) (domain.Document, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrInvalidDocument, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return domain.ParseDocument(body)
}

// PathParam returns the named route parameter, percent-decoded. chi matches
// against r.URL.RawPath when it is set, so parameters from such requests
// are still escaped. An undecodable value yields domain.ErrInvalidParameter.
func PathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL == nil || r.URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidParameter, name, err)
	}
	return decoded, nil
}
