// Package executor wires the input splitter, the WAAPI client, and the
// result normalizer into a single execute call.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/valyala/fastjson"

	"github.com/wwise-tools/waql/internal/resultset"
	"github.com/wwise-tools/waql/internal/waql"
)

// Querier is the transport dependency; satisfied by *waapi.Client.
type Querier interface {
	Query(ctx context.Context, clause string, projection []string) (*fastjson.Value, error)
}

// Outcome is the result of one successful execution. RawJSON is always set;
// Table is nil when the response carried no tabular data, in which case
// Count is 0.
type Outcome struct {
	RawJSON string
	Table   *resultset.Table
	Count   int
}

// Executor runs one query per Execute call. It holds no state between
// calls, so concurrent use needs no synchronization.
type Executor struct {
	client Querier
	logger *slog.Logger
}

// New creates an Executor. A nil logger discards debug output.
func New(client Querier, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{client: client, logger: logger}
}

// Execute splits raw input, dispatches it to WAAPI, and normalizes the
// response. Failures are stage-tagged ("query: ...") so parse errors are
// distinguishable from transport errors; the empty-input error passes
// through verbatim as a user-facing hint.
func (e *Executor) Execute(ctx context.Context, raw string) (*Outcome, error) {
	clause, projection, err := waql.Split(raw)
	if err != nil {
		if errors.Is(err, waql.ErrEmptyQuery) {
			return nil, err
		}
		return nil, fmt.Errorf("parse: %w", err)
	}

	e.logger.Debug("executing query", "clause", clause, "projection", projection)

	result, err := e.client.Query(ctx, clause, projection)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	table := resultset.Normalize(result)
	count := 0
	if table != nil {
		count = len(table.Rows)
	}
	e.logger.Debug("query done", "rows", count)

	return &Outcome{
		RawJSON: prettyJSON(result),
		Table:   table,
		Count:   count,
	}, nil
}

// prettyJSON formats a response for human display. Key order is whatever
// the service sent.
func prettyJSON(v *fastjson.Value) string {
	compact := v.MarshalTo(nil)
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return string(compact)
	}
	return buf.String()
}
