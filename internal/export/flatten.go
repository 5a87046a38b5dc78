package export

import (
	"sort"
	"strconv"

	"github.com/scan-io-git/meetup-data/internal/record"
)

// KeySeparator joins path segments of flattened keys.
const KeySeparator = "_"

// ValueKey holds a record that is not a mapping when it is flattened.
const ValueKey = "value"

// Flatten un-nests one level of rec into a new single-level mapping.
//
// Mapping values become parent_child entries. With expand, sequence values
// become parent_index entries, or parent_index_child when the element is a
// mapping. Everything else is copied under its own key. Keys keep the order
// in which they are first produced; grandchildren are carried as values.
func Flatten(rec record.Value, expand bool) record.Value {
	row := record.NewMapping()
	if !rec.IsMapping() {
		row.Set(ValueKey, rec.Clone())
		return row
	}

	rec.Each(func(key string, val record.Value) {
		switch {
		case val.IsMapping():
			val.Each(func(child string, cv record.Value) {
				row.Set(key+KeySeparator+child, cv.Clone())
			})
		case expand && val.IsSequence():
			for i, item := range val.Items() {
				prefix := key + KeySeparator + strconv.Itoa(i)
				if !item.IsMapping() {
					row.Set(prefix, item.Clone())
					continue
				}
				item.Each(func(child string, cv record.Value) {
					row.Set(prefix+KeySeparator+child, cv.Clone())
				})
			}
		default:
			row.Set(key, val.Clone())
		}
	})
	return row
}

// Header returns the sorted union of keys across rows.
func Header(rows []record.Value) []string {
	seen := make(map[string]struct{})
	var header []string
	for _, row := range rows {
		for _, key := range row.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			header = append(header, key)
		}
	}
	sort.Strings(header)
	return header
}

// Cell renders a flattened value for a tabular cell. Booleans become the
// literal tokens true and false, null becomes an empty cell, and any nested
// structure left after flattening is written as compact JSON.
func Cell(v record.Value) string {
	if v.IsNull() {
		return ""
	}
	if b, ok := v.AsBool(); ok {
		if b {
			return "true"
		}
		return "false"
	}
	if s, ok := v.AsString(); ok {
		return s
	}
	return record.Compact(v)
}
