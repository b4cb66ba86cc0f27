package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSources_ListsInPriorityOrder(t *testing.T) {
	dir := t.TempDir()
	propsPath := filepath.Join(dir, "app.properties")
	require.NoError(t, os.WriteFile(propsPath, []byte("app.name=demo\n"), 0o644))

	manifestPath := filepath.Join(dir, "manifest.yaml")
	content := "sources:\n  - type: properties\n    path: " + propsPath + "\n    required: true\n  - type: env\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0o644))

	original := sourcesManifestPath
	defer func() { sourcesManifestPath = original }()
	sourcesManifestPath = manifestPath

	var out bytes.Buffer
	sourcesCmd.SetOut(&out)
	require.NoError(t, runSources(sourcesCmd, nil))

	assert.Contains(t, out.String(), "1. environment")
	assert.Contains(t, out.String(), "2. "+propsPath)
}
