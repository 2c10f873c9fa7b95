package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseArchives(t *testing.T) {
	version, archives := releaseArchives([]string{
		"checksums.txt",
		"clipbar_0.2.0_Linux_x86_64.tar.gz",
		"clipbar_0.2.0_Darwin_arm64.tar.gz",
		"clipbar_0.2.0_Windows_x86_64.zip",
		"clipbar_0.2.0_Linux_x86_64.zip",
		"other_0.2.0_Linux_arm64.tar.gz",
	})
	assert.Equal(t, "0.2.0", version)
	require.Len(t, archives, 3)
	assert.Equal(t, archive{platform: "Darwin_arm64", file: "clipbar_0.2.0_Darwin_arm64.tar.gz"}, archives[0])
	assert.Equal(t, "Linux_x86_64", archives[1].platform)
	assert.Equal(t, "clipbar_0.2.0_Linux_x86_64.tar.gz", archives[1].file)

	version, archives = releaseArchives(nil)
	assert.Equal(t, "unknown", version)
	assert.Empty(t, archives)
}

func TestReplaceInstallationSection(t *testing.T) {
	page := renderMarkdown([]byte("# clipbar\n\n## Installation\n\ngo install\n\n## Usage\n\nrun it\n"))
	out := string(replaceInstallationSection(page, "<table>downloads</table>"))

	assert.Contains(t, out, "<table>downloads</table>")
	assert.NotContains(t, out, "go install")
	assert.Contains(t, out, `<h2 id="usage">Usage</h2>`)

	last := renderMarkdown([]byte("## Installation\n\ngo install\n"))
	assert.Equal(t, string(last), string(replaceInstallationSection(last, "x")))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# clipbar\n\n## Installation\n\nsoon\n\n## Usage\n\n`clipbar bar.yaml`\n"), 0o600))
	dist := filepath.Join(dir, "dist")
	require.NoError(t, os.Mkdir(dist, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "clipbar_1.0.0_Linux_arm64.tar.gz"), nil, 0o600))

	require.NoError(t, run(readme, dist))

	data, err := os.ReadFile(filepath.Join(dist, "index.html"))
	require.NoError(t, err)
	html := string(data)
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<h3>1.0.0</h3>")
	assert.Contains(t, html, "Linux (ARM64)")
	assert.Contains(t, html, "<code>clipbar bar.yaml</code>")
	assert.True(t, strings.HasSuffix(html, "</html>\n"))

	require.Error(t, run(filepath.Join(dir, "missing.md"), dist))
}
