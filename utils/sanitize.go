package utils

import "github.com/microcosm-cc/bluemonday"

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all HTML from user supplied free-text fields before
// they are stored.
func SanitizeText(s string) string {
	return strictPolicy.Sanitize(s)
}
