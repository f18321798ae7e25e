package util

import (
	"strings"

	"golang.org/x/text/cases"
)

// ContainsFold reports whether needle appears in haystack under Unicode case folding.
// An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(haystack), folder.String(needle))
}
