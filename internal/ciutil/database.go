package ciutil

import "log/slog"

// GetTestMongoURI returns the document store URI integration tests should
// use, checking SERVICEHUB_TEST_MONGODB_URI then MONGODB_URI. It returns ""
// when neither is set.
func GetTestMongoURI(logger *slog.Logger) string {
	uri := GetEnvWithFallbacks([]string{EnvTestMongoURI, EnvMongoURI}, "", logger)
	if logger != nil {
		if uri == "" {
			logger.Info("No document store URI environment variables found")
		} else {
			logger.Info("Using document store URI from environment", "value", MaskSensitiveValue(uri))
		}
	}
	return uri
}

// MustHaveTestStore reports whether a missing test store should fail the
// run instead of skipping. It is true in CI.
func MustHaveTestStore() bool {
	return IsCI()
}
