package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
)

// Path parameter names used in route patterns.
const (
	paramID    = "id"
	paramEmail = "email"
)

// pathParam returns the named route parameter, percent-decoded.
func pathParam(r *http.Request, name string) (string, error) {
	return shared.PathParam(r, name)
}

// parseLimit reads the limit query parameter. Like a leading-integer parse,
// "12abc" yields 12. Absent or non-numeric values yield 0, meaning no cap.
// A negative limit caps at its absolute value.
func parseLimit(raw string) int64 {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	if n < 0 {
		n = -n
	}
	if n < 0 {
		return 0
	}
	return n
}
