// Command minify builds the dist/ tree served in production: templates,
// stylesheets, scripts and card images, each run through tdewolff/minify.
// With -input it minifies a single file instead.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
	"go.uber.org/zap"
)

const (
	mediaHTML = "text/html"
	mediaCSS  = "text/css"
	mediaJS   = "application/javascript"
	mediaSVG  = "image/svg+xml"
)

var mediaTypes = map[string]string{
	".html": mediaHTML,
	".css":  mediaCSS,
	".js":   mediaJS,
	".svg":  mediaSVG,
}

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path (single-file mode)")
		outputFile = flag.String("output", "", "Output file path (single-file mode)")
		fileType   = flag.String("type", "", "File type in single-file mode (css, js, html or svg)")
		outDir     = flag.String("out", "dist", "Output directory for the full build")
	)
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	m := newMinifier()

	if *inputFile != "" {
		if *outputFile == "" || *fileType == "" {
			log.Fatal("Usage: go run ./cmd/minify -input=<file> -output=<file> -type=<css|js|html|svg>")
		}
		mediaType, ok := mediaTypes["."+strings.ToLower(*fileType)]
		if !ok {
			log.Fatalf("Unsupported file type: %s (supported: css, js, html, svg)", *fileType)
		}
		st, err := minifyFile(m, *inputFile, *outputFile, mediaType)
		if err != nil {
			log.Fatalf("Failed to minify %s: %v", *inputFile, err)
		}
		log.Infof("Minified %s -> %s (%s)", *inputFile, *outputFile, st)
		return
	}

	stats, err := buildDist(m, ".", *outDir)
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}
	for _, st := range stats {
		log.Infof("📦 %s", st)
	}
	log.Infof("✅ Minified %d files into %s", len(stats), *outDir)
}

// newMinifier registers a minifier for every media type the site serves.
// HTML keeps Go template actions and the tags templates rely on.
func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(mediaCSS, css.Minify)
	m.AddFunc(mediaJS, js.Minify)
	m.AddFunc(mediaSVG, svg.Minify)
	m.Add(mediaHTML, &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
		TemplateDelims:   html.GoTemplateDelims,
	})
	return m
}

type fileStat struct {
	Path     string
	Original int
	Minified int
}

func (s fileStat) String() string {
	ratio := 0.0
	if s.Original > 0 {
		ratio = float64(s.Original-s.Minified) / float64(s.Original) * 100
	}
	return fmt.Sprintf("%s: %d bytes → %d bytes (%.1f%% reduction)", s.Path, s.Original, s.Minified, ratio)
}

// buildDist mirrors templates/ and static/ under root into out, minifying
// every file with a known media type and copying the rest verbatim.
func buildDist(m *minify.M, root, out string) ([]fileStat, error) {
	var stats []fileStat
	for _, dir := range []string{"templates", "static"} {
		src := filepath.Join(root, dir)
		err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			dst := filepath.Join(out, rel)

			mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
			if !ok {
				return copyFile(path, dst)
			}
			st, err := minifyFile(m, path, dst, mediaType)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			st.Path = rel
			stats = append(stats, st)
			return nil
		})
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func minifyFile(m *minify.M, srcPath, dstPath, mediaType string) (fileStat, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fileStat{}, err
	}

	minified, err := m.Bytes(mediaType, src)
	if err != nil {
		return fileStat{}, err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fileStat{}, err
	}
	if err := os.WriteFile(dstPath, minified, 0644); err != nil {
		return fileStat{}, err
	}
	return fileStat{Path: srcPath, Original: len(src), Minified: len(minified)}, nil
}

func copyFile(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, data, 0644)
}
