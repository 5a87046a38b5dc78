package anonymize

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/meetup-data/internal/record"
)

// Level selects how much of a personally-identifying field survives.
type Level int

const (
	// Identifiable keeps every field as fetched.
	Identifiable Level = iota
	// FirstName keeps only the first whitespace-separated word of string fields.
	FirstName
	// Redacted replaces every PI field with RedactionMarker.
	Redacted
)

// RedactionMarker replaces PI values at the Redacted level.
const RedactionMarker = "..."

var levelNames = map[Level]string{
	Identifiable: "identifiable",
	FirstName:    "firstname",
	Redacted:     "redacted",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ParseLevel converts a level name or its number ("0", "1", "2") to a Level.
func ParseLevel(s string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for level, name := range levelNames {
		if normalized == name || normalized == fmt.Sprint(int(level)) {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown anonymization level %q", s)
}

// Anonymize returns a copy of v with the named PI fields reduced according
// to level. v itself is left untouched.
//
// Only mappings are scanned. A key that names a PI field is rewritten and not
// descended into; other mapping-valued keys are scanned recursively with the
// same fields. Sequences are copied as-is, so PI fields inside list elements
// keep their values.
func Anonymize(v record.Value, fields []string, level Level) record.Value {
	if level == Identifiable || len(fields) == 0 || !v.IsMapping() {
		return v.Clone()
	}

	pi := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		pi[f] = struct{}{}
	}
	return anonymizeMapping(v, pi, level)
}

func anonymizeMapping(v record.Value, pi map[string]struct{}, level Level) record.Value {
	out := record.NewMapping()
	v.Each(func(key string, child record.Value) {
		if _, isPI := pi[key]; isPI {
			out.Set(key, reduce(child, level))
			return
		}
		if child.IsMapping() {
			out.Set(key, anonymizeMapping(child, pi, level))
			return
		}
		out.Set(key, child.Clone())
	})
	return out
}

func reduce(v record.Value, level Level) record.Value {
	switch level {
	case Redacted:
		return record.String(RedactionMarker)
	case FirstName:
		s, ok := v.AsString()
		if !ok {
			return v.Clone()
		}
		if parts := strings.Fields(s); len(parts) > 1 {
			return record.String(parts[0])
		}
		return v
	default:
		return v.Clone()
	}
}
