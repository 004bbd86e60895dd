// internal/app/store/storeutil/storeutil.go
package storeutil

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailSubstring builds a case-insensitive substring matcher for the
// email field of a reporting view. The operator's input is quoted, so
// "a.b" matches the literal characters rather than acting as a pattern.
func EmailSubstring(sub string) primitive.Regex {
	return primitive.Regex{
		Pattern: regexp.QuoteMeta(strings.TrimSpace(sub)),
		Options: "i",
	}
}

// CapLimit clamps a row limit to (0, max]. Zero or negative limits get
// the maximum; reporting views never return unbounded result sets.
func CapLimit(limit, max int64) int64 {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
