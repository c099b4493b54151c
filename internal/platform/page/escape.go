// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var markupReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape renders value as text that is safe to place inside markup.
//
// Numbers pass through unchanged. Strings have the five markup-significant
// characters replaced by entities. Anything else is formatted with fmt first.
func Escape(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return markupReplacer.Replace(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return markupReplacer.Replace(fmt.Sprint(v))
	}
}
