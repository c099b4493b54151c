// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning 0 instead of an error when parsing fails). This is useful
when reading ids out of submitted forms, where an unparseable value is
treated the same as a missing one.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ToInt64 converts a string to an int64, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt64(s string) int64 {

	// If the string is empty, return 0
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Try to parse the string as an integer
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// ToIDs converts every value to an int64 id, dropping values that are not
// positive numbers and duplicates. Order of first appearance is kept.
func ToIDs(values []string) []int64 {
	ids := lo.FilterMap(values, func(value string, _ int) (int64, bool) {
		id := ToInt64(value)
		return id, id > 0
	})
	return lo.Uniq(ids)
}

// FormatID renders an id the way it appears in URLs and form values.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
