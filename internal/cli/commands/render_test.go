package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwise-tools/waql/internal/executor"
	"github.com/wwise-tools/waql/internal/resultset"
)

func sampleOutcome() *executor.Outcome {
	return &executor.Outcome{
		RawJSON: "{\n  \"return\": []\n}",
		Table: &resultset.Table{
			Columns: []string{"name", "id"},
			Rows: []map[string]string{
				{"name": "Footstep", "id": "{A1}"},
				{"name": "Jump", "id": ""},
			},
		},
		Count: 2,
	}
}

func TestRenderOutcome_Table(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderOutcome(buf, sampleOutcome(), "table"))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Footstep")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderOutcome_CSV(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderOutcome(buf, sampleOutcome(), "csv"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,id", lines[0])
	assert.Equal(t, "Footstep,{A1}", lines[1])
	assert.Equal(t, "Jump,", lines[2])
}

func TestRenderOutcome_JSON(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderOutcome(buf, sampleOutcome(), "json"))
	assert.Equal(t, sampleOutcome().RawJSON+"\n", buf.String())
}

func TestRenderOutcome_Markdown(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderOutcome(buf, sampleOutcome(), "md"))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "| Footstep |")
}

func TestRenderOutcome_NoTableShowsRawJSON(t *testing.T) {
	out := &executor.Outcome{RawJSON: "{\n  \"count\": 5\n}"}

	for _, format := range []string{"table", "json", "csv", "md"} {
		buf := new(bytes.Buffer)
		require.NoError(t, renderOutcome(buf, out, format))
		assert.Equal(t, out.RawJSON+"\n", buf.String(), "format %s", format)
	}
}
