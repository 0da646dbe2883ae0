package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMerge_MarkdownReportsOutputExtension(t *testing.T) {
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "report.md")
	require.NoError(t, os.WriteFile(tplPath, []byte("# {{ title }}\n"), 0o644))
	dataPath := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"title":"Hi"}`), 0o644))

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	RunMerge([]string{tplPath, "markdown-template", dataPath})

	require.NoError(t, w.Close())
	var out strings.Builder
	_, err = io.Copy(&out, r)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "<h1>Hi</h1>")
	// the markdown engine emits HTML, so the log must not report .md
	assert.Contains(t, logs.String(), ".html)")
	assert.NotContains(t, logs.String(), ".md)")
}
