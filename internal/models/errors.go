package models

import "regexp"

// ValidationError is returned by Validate methods so callers can tell
// a rejected form apart from a failed remote write.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

var urlRe = regexp.MustCompile(`(?i)^https?://.+`)

// IsURL reports whether v looks like an absolute http(s) URL.
func IsURL(v string) bool { return urlRe.MatchString(v) }
