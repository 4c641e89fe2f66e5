package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultBucket is the bucket key for items without attributes or pet
// metadata. Every item has at least this bucket.
const DefaultBucket = "default"

// BuildAttributeKey canonicalizes an item's attribute map into a bucket
// key: "ATTRIBUTE;value" segments, attribute names uppercased, values
// stringified and trimmed, segments sorted and joined with "+". Input
// key ordering never affects the result.
func BuildAttributeKey(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}

	segments := make([]string, 0, len(attrs))
	for name, raw := range attrs {
		segments = append(segments, fmt.Sprintf("%s;%s", strings.ToUpper(name), strings.TrimSpace(fmt.Sprint(raw))))
	}

	sort.Strings(segments)

	return strings.Join(segments, "+")
}

// AttributeLevel is one "NAME;level" segment of an attribute key.
type AttributeLevel struct {
	Name  string
	Level float64
}

// ParseAttributeKey splits a canonical attribute key back into its
// segments. Segments that do not carry a numeric level are skipped.
func ParseAttributeKey(key string) []AttributeLevel {
	var out []AttributeLevel

	for _, segment := range strings.Split(key, "+") {
		parts := strings.Split(segment, ";")
		if len(parts) != 2 {
			continue
		}

		level, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}

		out = append(out, AttributeLevel{
			Name:  strings.ToUpper(strings.TrimSpace(parts[0])),
			Level: level,
		})
	}

	return out
}

// NormalizeAttributeFilter uppercases a user-supplied attribute search
// term and collapses whitespace to the "+" separator used in keys.
func NormalizeAttributeFilter(filter string) string {
	normalized := strings.ToUpper(strings.TrimSpace(filter))
	if normalized == "" {
		return ""
	}

	return strings.Join(strings.Fields(normalized), "+")
}
