// Package waql handles the query-plus-options input syntax.
//
// A WAQL statement may be followed by a projection list separated by a
// pipe: `$ from type Sound | name id`. The statement itself is opaque to
// this tool and is forwarded to WAAPI verbatim.
package waql

import (
	"errors"
	"strings"
)

// ErrEmptyQuery is returned when the input contains no statement.
var ErrEmptyQuery = errors.New("please enter a WAQL statement")

// Split separates raw input into the WAQL clause and an optional projection
// list (the "return" fields requested from WAAPI).
//
// Only the first `|` is a delimiter; later pipes end up as literal
// projection tokens. Duplicate tokens are preserved in user order.
func Split(input string) (clause string, projection []string, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil, ErrEmptyQuery
	}

	before, after, found := strings.Cut(input, "|")
	if !found {
		return input, nil, nil
	}

	clause = strings.TrimSpace(before)
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return clause, nil, nil
	}
	return clause, fields, nil
}
