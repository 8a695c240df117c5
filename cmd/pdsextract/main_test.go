package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/pdsextract-go/internal/config"
)

func writeWorkbook(t *testing.T, dir, name, surname string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "C1"))
	require.NoError(t, f.SetCellValue("C1", "B5", surname))

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flags are package state; reset what earlier runs may have set.
	outputPath, pretty, jobs, sheetsDir, mappingPath, verbose = "", false, 4, "", "", false
	forceInit = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	mappingFile := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(mappingFile, []byte("fields:\n  surname: B5\n"), 0644))

	a := writeWorkbook(t, dir, "a.xlsx", "Dela Cruz")
	b := writeWorkbook(t, dir, "b.xlsx", "Santos")
	noConfig := filepath.Join(dir, "absent.toml")

	out, err := execute(t, "extract", "--config", noConfig, "--mapping", mappingFile, a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"surname":"Dela Cruz"}`, out)

	out, err = execute(t, "extract", "--config", noConfig, "-m", mappingFile, "-j", "2", a, b)
	require.NoError(t, err)
	var batch map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	assert.Equal(t, "Dela Cruz", batch[a]["surname"])
	assert.Equal(t, "Santos", batch[b]["surname"])

	sheets := filepath.Join(dir, "sheets")
	outFile := filepath.Join(dir, "out.json")
	_, err = execute(t, "extract", "--config", noConfig, "-m", mappingFile, "-o", outFile, "--sheets-dir", sheets, a)
	require.NoError(t, err)
	assert.FileExists(t, outFile)
	assert.FileExists(t, filepath.Join(sheets, "C1.json"))
}

func TestExtractCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	noConfig := filepath.Join(dir, "absent.toml")

	_, err := execute(t, "extract", "--config", noConfig, filepath.Join(dir, "missing.xlsx"))
	assert.ErrorContains(t, err, "file not found")

	a := writeWorkbook(t, dir, "a.xlsx", "Dela Cruz")
	_, err = execute(t, "extract", "--config", noConfig, "--jobs", "0", a)
	assert.Error(t, err)
}

func TestSheetsCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeWorkbook(t, dir, "a.xlsx", "Dela Cruz")

	out, err := execute(t, "sheets", "--config", filepath.Join(dir, "absent.toml"), a)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"book_name":"a.xlsx","sheets":{"C1":{"title":"C1","dimension":"B5:B5","rows":[{"r":5,"c":{"B":"Dela Cruz"}}]}}}`,
		out)
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}
