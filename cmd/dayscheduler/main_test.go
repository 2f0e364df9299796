package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_StdinToJSON(t *testing.T) {
	var out bytes.Buffer
	args := []string{"--config", filepath.Join(t.TempDir(), "none.toml")}

	err := run(context.Background(), args, strings.NewReader(`{"day": "MonThu", "room_id": 12}`), &out)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Mon", records[0]["day"])
	assert.Equal(t, "Thu", records[1]["day"])
}

func TestRun_FileAndFlags(t *testing.T) {
	configPath := writeFile(t, "config.toml", "[output]\nformat = \"yaml\"\n")
	input := writeFile(t, "records.yaml", "- day: Wed, Fri\n  room_id: 3\n")
	var out bytes.Buffer

	args := []string{"-c", configPath, "-i", input, "--format", "json", "--mode", "normalize", "--day-names"}
	err := run(context.Background(), args, strings.NewReader(""), &out)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "WedFri", records[0]["day"])
	assert.Equal(t, "Wednesday, Friday", records[0]["day_name"])
}

func TestRun_Errors(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), "none.toml")

	tests := []struct {
		name          string
		args          []string
		expectedError string
	}{
		{"bad format flag", []string{"-c", noConfig, "--format", "xml"}, "invalid output format"},
		{"bad mode flag", []string{"-c", noConfig, "--mode", "explode"}, "invalid expansion mode"},
		{"missing input", []string{"-c", noConfig, "-i", filepath.Join(t.TempDir(), "missing.json")}, "failed to open input"},
		{"extra argument", []string{"-c", noConfig, "records.json"}, "unexpected argument"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, strings.NewReader("[]"), &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--version"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "dayscheduler dev")
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"--help", "-h"} {
		t.Run(arg, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(context.Background(), []string{arg}, strings.NewReader(""), &out))

			help := out.String()
			assert.Contains(t, help, "Usage:")
			assert.Contains(t, help, "--format")
			assert.Contains(t, help, "json, yaml")
			assert.Contains(t, help, "--strict")
		})
	}
}

func TestRun_StrictFlag(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), "none.toml")
	input := `[{"day": "MonWed"}, {"day": "TBA"}]`

	var out bytes.Buffer
	err := run(context.Background(), []string{"-c", noConfig, "--strict"}, strings.NewReader(input), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "names no weekday")

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"-c", noConfig}, strings.NewReader(input), &out))
	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	assert.Len(t, records, 3)
}
