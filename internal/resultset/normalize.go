package resultset

import (
	"github.com/valyala/fastjson"
)

// Normalize converts a WAAPI response object into a Table.
//
// The "return" value is expected to be an array of objects, but nothing is
// guaranteed: a missing key, a non-array value, or an empty array all mean
// "no tabular data" and yield nil rather than an error (count-style
// responses land here). Array elements that are not objects are skipped.
//
// Columns are discovered in first-seen key order, iterating elements and
// their keys in document order, so the result is deterministic for a given
// response. fastjson keeps object keys in their original order, which is
// why the pipeline hands around *fastjson.Value instead of Go maps.
func Normalize(result *fastjson.Value) *Table {
	if result == nil {
		return nil
	}
	ret := result.Get("return")
	if ret == nil || ret.Type() != fastjson.TypeArray {
		return nil
	}
	items, err := ret.Array()
	if err != nil || len(items) == 0 {
		return nil
	}

	var columns []string
	seen := make(map[string]struct{})
	for _, item := range items {
		obj, err := item.Object()
		if err != nil {
			continue
		}
		obj.Visit(func(key []byte, _ *fastjson.Value) {
			k := string(key)
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		})
	}
	if len(columns) == 0 {
		return nil
	}

	var rows []map[string]string
	for _, item := range items {
		obj, err := item.Object()
		if err != nil {
			continue
		}
		row := make(map[string]string, len(columns))
		for _, col := range columns {
			if v := obj.Get(col); v != nil {
				row[col] = Stringify(v)
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}
}

// Stringify renders a JSON value as display text: strings verbatim, numbers
// as their decimal text, booleans as true/false, null as "null", and
// composite values as compact JSON.
func Stringify(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeTrue:
		return "true"
	case fastjson.TypeFalse:
		return "false"
	case fastjson.TypeNull:
		return "null"
	default:
		return string(v.MarshalTo(nil))
	}
}
