// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Store driver errors
// routinely embed connection strings, hostnames and the offending document
// values (for example the email in a duplicate key error), and auth failures
// can carry raw tokens; everything logged from an error path goes through here.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules must not leave fragments that
// later rules would mangle.
var rules = []rule{
	// Connection strings: mongodb://user:pass@, mongodb+srv://user:pass@, ...
	{
		regexp.MustCompile(`(?i)(mongodb(?:\+srv)?|postgres|mysql|redis)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	// Three-part base64url JWT.
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	// Cookie pairs carrying the credential.
	{
		regexp.MustCompile(`(?i)\b(token)=[^;\s]+`),
		"${1}=" + RedactionPlaceholder,
	},
	// key=value or key: value secrets.
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|api[_-]?key)(\s*[=:]\s*['"]?)[^'"&\s]{3,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
