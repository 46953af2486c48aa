package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwise-tools/waql/internal/cli/config"
	"github.com/wwise-tools/waql/internal/testutil"
	"github.com/wwise-tools/waql/internal/waql"
)

// newWAAPIServer serves a canned WAAPI response for every POST.
func newWAAPIServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runCommand executes a command with deps pointing at the test server.
func runCommand(t *testing.T, cmd *cobra.Command, url string, args []string) (string, string, error) {
	t.Helper()

	deps := &Deps{
		Cfg: &config.Config{
			URL:     url,
			Timeout: 5 * time.Second,
			Output:  "table",
		},
		Logger: testutil.NewTestLogger(t),
	}

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(WithDeps(t.Context(), deps))
	return stdout.String(), stderr.String(), err
}

func TestQueryCommand_CSVOutput(t *testing.T) {
	srv := newWAAPIServer(t, `{"return": [{"name":"Footstep","id":"{A1}"}, {"id":"{B2}","volume":-3}]}`)

	stdout, _, err := runCommand(t, NewQueryCommand(), srv.URL,
		[]string{"$ from type Sound", "--format", "csv"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,id,volume", lines[0])
	assert.Equal(t, "Footstep,{A1},", lines[1])
	assert.Equal(t, ",{B2},-3", lines[2])
}

func TestQueryCommand_TableOutput(t *testing.T) {
	srv := newWAAPIServer(t, `{"return": [{"name":"Footstep"}]}`)

	stdout, _, err := runCommand(t, NewQueryCommand(), srv.URL,
		[]string{"$ from type Sound"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "Footstep")
	assert.Contains(t, stdout, "(1 rows)")
}

func TestQueryCommand_JSONOutput(t *testing.T) {
	srv := newWAAPIServer(t, `{"return": [{"name":"Footstep"}]}`)

	stdout, _, err := runCommand(t, NewQueryCommand(), srv.URL,
		[]string{"$ from type Sound", "-f", "json"})
	require.NoError(t, err)
	assert.Contains(t, stdout, `"name": "Footstep"`)
}

func TestQueryCommand_NonTabularShowsRaw(t *testing.T) {
	srv := newWAAPIServer(t, `{"count": 12}`)

	stdout, _, err := runCommand(t, NewQueryCommand(), srv.URL,
		[]string{"$ from type Sound select count"})
	require.NoError(t, err)
	assert.Contains(t, stdout, `"count": 12`)
}

func TestQueryCommand_ExportToFile(t *testing.T) {
	srv := newWAAPIServer(t, `{"return": [{"name":"Footstep","volume":-3.5}]}`)
	outPath := filepath.Join(t.TempDir(), "results.csv")

	stdout, _, err := runCommand(t, NewQueryCommand(), srv.URL,
		[]string{"$ from type Sound | name volume", "--out", outPath})
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 1 rows to "+outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "name,volume\nFootstep,-3.5\n", string(content))
}

func TestQueryCommand_ExportWithoutTableFails(t *testing.T) {
	srv := newWAAPIServer(t, `{"count": 3}`)
	outPath := filepath.Join(t.TempDir(), "results.csv")

	_, _, err := runCommand(t, NewQueryCommand(), srv.URL,
		[]string{"$ from type Sound select count", "--out", outPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tabular data")
	assert.NoFileExists(t, outPath)
}

func TestQueryCommand_EmptyQuery(t *testing.T) {
	srv := newWAAPIServer(t, `{}`)

	_, _, err := runCommand(t, NewQueryCommand(), srv.URL, []string{"   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, waql.ErrEmptyQuery)
}

func TestQueryCommand_TransportError(t *testing.T) {
	srv := newWAAPIServer(t, `{}`)
	srv.Close() // force connection refused

	_, _, err := runCommand(t, NewQueryCommand(), srv.URL, []string{"$ from type Sound"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query: ")
}

func TestQueryCommand_InputFile(t *testing.T) {
	srv := newWAAPIServer(t, `{"return": [{"name":"Footstep"}]}`)

	inPath := filepath.Join(t.TempDir(), "query.waql")
	require.NoError(t, os.WriteFile(inPath, []byte("$ from type Sound | name\n"), 0o644))

	stdout, _, err := runCommand(t, NewQueryCommand(), srv.URL,
		[]string{"--input", inPath, "--format", "csv"})
	require.NoError(t, err)
	assert.Equal(t, "name\nFootstep\n", stdout)
}

func TestExportCSVFile_BadPath(t *testing.T) {
	err := exportCSVFile(sampleOutcome().Table, filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

func TestInfoCommand(t *testing.T) {
	srv := newWAAPIServer(t, `{"displayName":"Wwise","version":{"displayName":"2023.1.0"}}`)

	stdout, _, err := runCommand(t, NewInfoCommand(), srv.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Connected to Wwise 2023.1.0")
	assert.Contains(t, stdout, `"displayName": "Wwise"`)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, NewVersionCommand("1.2.3"), "http://unused.local", nil)
	require.NoError(t, err)
	assert.Contains(t, stdout, "waql v1.2.3")
}
