package atlas

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"bgviewer/internal/models"
)

// FormatMetadata renders the metadata one "key: value" line per entry, in
// file order. Values read the way the Python viewer prints them: True/False,
// None, floats keep their ".0" and lists are comma-space separated.
func FormatMetadata(meta models.AtlasMetadata) string {
	var sb strings.Builder
	for _, e := range meta.Entries {
		fmt.Fprintf(&sb, "%s: %s\n", e.Key, formatValue(e.Value))
	}
	return sb.String()
}

// formatValue renders a top level value; strings are printed bare
func formatValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return formatRepr(v)
}

// formatRepr renders a value nested inside a list or object
func formatRepr(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case string:
		return quoteString(val)
	case json.Number:
		return formatNumber(val)
	case float64:
		return formatFloat(val)
	case []interface{}:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = formatRepr(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = quoteString(k) + ": " + formatRepr(val[k])
		}
		return "{" + strings.Join(items, ", ") + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumber keeps integers as written and renders the rest as floats
func formatNumber(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	f, err := n.Float64()
	if err != nil {
		return s
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quoteString quotes with single quotes unless the text holds one and no double quote
func quoteString(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
	}
	r := strings.NewReplacer(`\`, `\\`, "'", `\'`, "\n", `\n`, "\t", `\t`)
	return "'" + r.Replace(s) + "'"
}
