// Command generate_index renders README.md into dist/index.html with a
// download table for the release archives found next to it.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/clipbar/pkg/settings"
)

const bin = settings.CliBinaryName

// archivePattern matches goreleaser archives such as
// clipbar_0.1.0-SNAPSHOT-abc123_Darwin_arm64.tar.gz.
var archivePattern = regexp.MustCompile(`^` + bin + `_([^_]+(?:-[^_]+)*)_(Darwin|Linux|Windows)_(arm64|x86_64)\.(?:tar\.gz|zip)$`)

var platformNames = map[string]string{
	"Darwin_arm64":   "macOS (Apple Silicon)",
	"Darwin_x86_64":  "macOS (Intel)",
	"Linux_arm64":    "Linux (ARM64)",
	"Linux_x86_64":   "Linux (x86_64)",
	"Windows_arm64":  "Windows (ARM64)",
	"Windows_x86_64": "Windows (x86_64)",
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dist-dir>\n", os.Args[0])
		os.Exit(1)
	}
	if err := run("README.md", os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(readmePath, distDir string) error {
	readme, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", readmePath, err)
	}
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", distDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	var buf bytes.Buffer
	writeHeader(&buf)
	buf.Write(replaceInstallationSection(renderMarkdown(readme), downloadsHTML(names)))
	writeFooter(&buf)

	indexPath := filepath.Join(distDir, "index.html")
	if err := os.WriteFile(indexPath, buf.Bytes(), 0o644); err != nil { //nolint:gosec // published page
		return fmt.Errorf("write %s: %w", indexPath, err)
	}
	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
	return nil
}

func renderMarkdown(src []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.Render(p.Parse(src), renderer)
}

type archive struct {
	platform string
	file     string
}

// releaseArchives picks one archive per platform out of names and reports the
// release version, or "unknown" when no archive matches.
func releaseArchives(names []string) (string, []archive) {
	version := "unknown"
	seen := map[string]bool{}
	var out []archive
	for _, name := range names {
		m := archivePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if version == "unknown" {
			version = m[1]
		}
		key := m[2] + "_" + m[3]
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, archive{platform: key, file: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].platform < out[j].platform })
	return version, out
}

func downloadsHTML(names []string) string {
	version, archives := releaseArchives(names)
	var sb strings.Builder
	sb.WriteString("  <div class=\"downloads\">\n    <h2>Downloads</h2>\n")
	fmt.Fprintf(&sb, "    <h3>%s</h3>\n    <table class=\"download-table\">\n", version)
	for _, a := range archives {
		fmt.Fprintf(&sb, "      <tr><td class=\"platform-name\">%s</td><td class=\"platform-links\"><a href=\"%s\">download</a></td></tr>\n",
			platformNames[a.platform], a.file)
	}
	sb.WriteString("    </table>\n  </div>\n")
	return sb.String()
}

func writeHeader(w io.Writer) {
	fmt.Fprintf(w, `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s - toolbars that clip to fit</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #333; }
    h1 { color: #0f766e; border-bottom: 2px solid #0f766e; padding-bottom: 10px; }
    h2 { color: #115e59; margin-top: 30px; }
    code { background: #f1f5f9; padding: 2px 6px; border-radius: 3px; font-family: Monaco, Menlo, monospace; font-size: 0.9em; }
    pre { background: #1e293b; color: #e2e8f0; padding: 16px; border-radius: 6px; overflow-x: auto; }
    pre code { background: none; color: inherit; padding: 0; }
    .downloads { background: #f0fdfa; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #0f766e; }
    .download-table td { padding: 6px 8px; }
    .platform-name { font-weight: 500; width: 200px; }
  </style>
</head>
<body>
`, bin)
}

func writeFooter(w io.Writer) {
	fmt.Fprint(w, "</body>\n</html>\n")
}

// replaceInstallationSection swaps the README's Installation section for the
// download table. Content is returned unchanged when the section is missing
// or is the last one.
func replaceInstallationSection(content []byte, downloads string) []byte {
	page := string(content)
	start := strings.Index(page, `<h2 id="installation">`)
	if start == -1 {
		start = strings.Index(page, `<h2 id="install">`)
	}
	if start == -1 {
		return content
	}
	next := strings.Index(page[start+1:], `<h2 id="`)
	if next == -1 {
		return content
	}
	next += start + 1

	replacement := `<h2 id="installation">Installation</h2>

` + downloads + `
<p>Extract the archive and move the binary to your PATH:</p>

<pre><code class="language-bash"># macOS / Linux
tar -xzf ` + bin + `_*.tar.gz
sudo mv ` + bin + ` /usr/local/bin/

# Windows: extract the .zip file and add ` + bin + `.exe to your PATH
</code></pre>

`
	return []byte(page[:start] + replacement + page[next:])
}
