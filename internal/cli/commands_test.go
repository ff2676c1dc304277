package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scanFile = filepath.Join("testdata", "scan.ort")

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decodeResponse(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	if data != nil && resp.Data != nil {
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return resp
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheck_ValidFile(t *testing.T) {
	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}), scanFile)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ "+scanFile+": 2 dataset(s)")
	assert.Contains(t, out, "[0] spin_up  2 row(s)  Qz (1/angstrom), R, sR")
	assert.Contains(t, out, "[1] spin_down  1 row(s)")
}

func TestCheck_JSON(t *testing.T) {
	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "json"}), scanFile)
	require.NoError(t, err)

	var result CheckResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, result.Datasets, 2)
	assert.Equal(t, "spin_down", result.Datasets[1].DataSet)
	assert.Equal(t, []string{"Qz (1/angstrom)", "R", "sR"}, result.Datasets[0].Columns)
}

func TestCheck_NotAnOrsoFile(t *testing.T) {
	path := writeFile(t, "plain.txt", "1 2 3\n")

	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "json"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "FORMAT_MISMATCH", resp.Error.Code)
}

func TestCheck_MissingFile(t *testing.T) {
	_, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "nope.ort"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_SchemaFindings(t *testing.T) {
	text, err := os.ReadFile(scanFile)
	require.NoError(t, err)
	// A numeric title passes the lenient resolver but not the schema.
	bad := bytes.Replace(text, []byte("title: Test beamtime"), []byte("title: 42"), 1)
	path := writeFile(t, "bad.ort", string(bad))

	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "json"}), path)
	require.Error(t, err)
	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "SCHEMA_VALIDATION_FAILURE", resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)

	_, err = execute(t, NewCheckCommand(&RootOptions{Format: "json"}), "--no-validate", path)
	assert.NoError(t, err)
}

func TestEmpty_Text(t *testing.T) {
	out, err := execute(t, NewEmptyCommand(&RootOptions{Format: "text"}))
	require.NoError(t, err)

	assert.Contains(t, out, "data_source:\n")
	assert.Contains(t, out, "data_set: \"\"\n")
	assert.NotContains(t, out, "creator:")
}

func TestEmpty_JSON(t *testing.T) {
	out, err := execute(t, NewEmptyCommand(&RootOptions{Format: "json"}))
	require.NoError(t, err)

	var skeleton map[string]any
	resp := decodeResponse(t, out, &skeleton)
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, skeleton, "data_source")
	assert.Contains(t, skeleton, "columns")
}

func TestDiff_ShowsDelta(t *testing.T) {
	out, err := execute(t, NewDiffCommand(&RootOptions{Format: "text"}), scanFile)
	require.NoError(t, err)

	assert.Equal(t, "--- [1] spin_down\ndata_source:\n  sample:\n    name: Si wafer B\ndata_set: spin_down\n", out)
}

func TestDiff_JSON(t *testing.T) {
	out, err := execute(t, NewDiffCommand(&RootOptions{Format: "json"}), scanFile)
	require.NoError(t, err)

	var result DiffResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, 1, result.Deltas[0].Position)
	assert.Equal(t, "spin_down", result.Deltas[0].Delta["data_set"])
}

func TestDiff_FewerThanTwoDatasets(t *testing.T) {
	magic := "# ORSO reflectivity data file | 1.0 standard | YAML encoding | https://www.reflectometry.org/\n"
	path := writeFile(t, "magic_only.ort", magic)

	out, err := execute(t, NewDiffCommand(&RootOptions{Format: "json"}), "--no-validate", path)
	require.NoError(t, err)
	var result DiffResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, result.Deltas)

	out, err = execute(t, NewDiffCommand(&RootOptions{Format: "text"}), "--no-validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to compare")
}

func TestIndexAndList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "orso.db")

	out, err := execute(t, NewIndexCommand(&RootOptions{Format: "text"}), "--db", db, scanFile)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ indexed 1 file(s)")

	out, err = execute(t, NewListCommand(&RootOptions{Format: "json"}), "--db", db)
	require.NoError(t, err)
	var all ListResult
	decodeResponse(t, out, &all)
	require.Len(t, all.Entries, 2)
	assert.Equal(t, "spin_up", all.Entries[0].DataSet)
	assert.Equal(t, "spin_down", all.Entries[1].DataSet)

	out, err = execute(t, NewListCommand(&RootOptions{Format: "json"}), "--db", db, "--data-set", "spin_down")
	require.NoError(t, err)
	var filtered ListResult
	decodeResponse(t, out, &filtered)
	require.Len(t, filtered.Entries, 1)
	assert.Equal(t, 1, filtered.Entries[0].Position)

	out, err = execute(t, NewListCommand(&RootOptions{Format: "text"}), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "DATA SET")
	assert.Contains(t, out, "spin_up")
}

func TestIndex_StopsAtFirstBadFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "orso.db")
	bad := writeFile(t, "bad.ort", "not orso\n")

	_, err := execute(t, NewIndexCommand(&RootOptions{Format: "text"}), "--db", db, scanFile, bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err := execute(t, NewListCommand(&RootOptions{Format: "json"}), "--db", db)
	require.NoError(t, err)
	var result ListResult
	decodeResponse(t, out, &result)
	assert.Len(t, result.Entries, 2)
}

func TestList_EmptyCatalogue(t *testing.T) {
	db := filepath.Join(t.TempDir(), "orso.db")

	out, err := execute(t, NewListCommand(&RootOptions{Format: "text"}), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No datasets found")
}
