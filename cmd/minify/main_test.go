package main

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// TestHTMLMinification checks that HTML is minified as expected
func TestHTMLMinification(t *testing.T) {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)

	input := `<html>
	<head>
		<title>Test</title>
	</head>
	<body>
		<p> Hello   World! </p>
	</body>
</html>`
	expected := `<title>Test</title><p>Hello World!`

	var b strings.Builder
	err := m.Minify("text/html", &b, strings.NewReader(input))
	if err != nil {
		t.Fatalf("HTML minification failed: %v", err)
	}
	got := strings.ReplaceAll(b.String(), "\n", "")
	if got != expected {
		t.Errorf("HTML minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

// TestCSSMinification checks that CSS is minified as expected
func TestCSSMinification(t *testing.T) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)

	input := `
		body {
			color: #fff;
			margin: 0  ;
		}
	`
	expected := `body{color:#fff;margin:0}`

	var b strings.Builder
	err := m.Minify("text/css", &b, strings.NewReader(input))
	if err != nil {
		t.Fatalf("CSS minification failed: %v", err)
	}
	if got := b.String(); got != expected {
		t.Errorf("CSS minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

// TestJSMinification checks that JavaScript is minified as expected
func TestJSMinification(t *testing.T) {
	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)

	input := `
		function add(a, b) {
			return a + b;
		}
	`
	expected := `function add(e,t){return e+t}`

	var b strings.Builder
	err := m.Minify("application/javascript", &b, strings.NewReader(input))
	if err != nil {
		t.Fatalf("JS minification failed: %v", err)
	}
	if got := b.String(); got != expected {
		t.Errorf("JS minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

func TestNewMinifier_SVG(t *testing.T) {
	m := newMinifier()
	input := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
  <!-- card -->
  <rect x="0" y="0" width="10" height="10" fill="#ffffff"/>
</svg>`

	out, err := m.String(mediaSVG, input)
	require.NoError(t, err)
	assert.Less(t, len(out), len(input))
	assert.NotContains(t, out, "<!--")
	assert.Contains(t, out, "<rect")
}

func TestBuildDist(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("templates/index.html", `<!DOCTYPE html>
<html>
<body>
    {{define "card-content"}}
    <section id="card" {{if .Poll}}hx-trigger="every {{.Poll}}"{{end}}>
        <p>  {{.Word}}  </p>
    </section>
    {{end}}
</body>
</html>`)
	write("static/css/style.css", "body {\n    margin: 0;\n}\n")
	write("static/images/card_front.svg", `<svg xmlns="http://www.w3.org/2000/svg">
  <rect width="1" height="1"/>
</svg>`)
	write("static/robots.txt", "User-agent: *\n")

	out := filepath.Join(root, "dist")
	stats, err := buildDist(newMinifier(), root, out)
	require.NoError(t, err)
	assert.Len(t, stats, 3)

	cssOut, err := os.ReadFile(filepath.Join(out, "static/css/style.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{margin:0}", string(cssOut))

	robots, err := os.ReadFile(filepath.Join(out, "static/robots.txt"))
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\n", string(robots), "unknown types are copied as is")

	_, err = os.Stat(filepath.Join(out, "static/images/card_front.svg"))
	assert.NoError(t, err)

	// The minified template must still parse and render.
	tmpl, err := template.ParseFiles(filepath.Join(out, "templates/index.html"))
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&b, "card-content", map[string]string{"Poll": "100ms", "Word": "hola"}))
	assert.Contains(t, b.String(), `hx-trigger="every 100ms"`)
	assert.Contains(t, b.String(), "hola")
}

func TestBuildDist_MissingSource(t *testing.T) {
	_, err := buildDist(newMinifier(), t.TempDir(), t.TempDir())
	assert.Error(t, err)
}

func TestFileStatString(t *testing.T) {
	st := fileStat{Path: "static/css/style.css", Original: 200, Minified: 150}
	assert.Equal(t, "static/css/style.css: 200 bytes → 150 bytes (25.0% reduction)", st.String())
	assert.Contains(t, fileStat{Path: "empty.css"}.String(), "0.0% reduction")
}
