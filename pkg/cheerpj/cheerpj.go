// Package cheerpj makes browser pages that run old Java applets
// through the CheerpJ runtime.
package cheerpj

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/joltarchive/joltarchive/pkg/gamejolt"
	"github.com/joltarchive/joltarchive/pkg/os"
)

const (
	FileName = "cheerpj.html"
	Loader   = "https://cjrtnc.leaningtech.com/4.0/loader.js"

	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	ErrNoClass    = errors.New("missing Java class name")
	ErrNoFilename = errors.New("missing file name")
)

// EmissionError is a runner page that could not be made.
type EmissionError struct {
	Path string
	Err  error
}

func (e *EmissionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("error creating CheerpJ HTML file: %v", e.Err)
	}
	return fmt.Sprintf("error creating CheerpJ HTML file %v: %v", e.Path, e.Err)
}

func (e *EmissionError) Unwrap() error { return e.Err }

// Page is everything the runner page template needs.
type Page struct {
	Title   string
	Loader  string
	Archive string
	Class   string
	Width   int
	Height  int
}

var page = template.Must(template.New(FileName).Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}} - CheerpJ Applet</title>
    <script src="{{.Loader}}"></script>
    <style>
      body {
        font-family: Arial, sans-serif;
        max-width: 1000px;
        margin: 0 auto;
        padding: 20px;
        background: #f5f5f5;
      }
      h1 { color: #333; }
      .container {
        background: white;
        padding: 20px;
        border-radius: 5px;
        box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        margin-bottom: 20px;
      }
      .instructions {
        background: #f0f8ff;
        padding: 15px;
        border-left: 4px solid #0066cc;
        margin: 20px 0;
      }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>{{.Title}}</h1>
      <div class="instructions">
        <p>This Java applet is running through CheerpJ, a Java runtime for browsers.</p>
        <p>It may take a moment to load. If you experience issues:</p>
        <ul>
          <li>Make sure you're using a modern browser (Chrome, Firefox, Edge)</li>
          <li>Try refreshing the page if the applet doesn't start</li>
          <li>Allow pop-ups if prompted</li>
        </ul>
      </div>
      <applet
        archive="{{.Archive}}"
        code="{{.Class}}"
        height="{{.Height}}"
        width="{{.Width}}"
      ></applet>
    </div>
    <script>
      cheerpjInit();
    </script>
  </body>
</html>
`))

// NewPage checks the file has what an applet needs to start
// and fills in the default sizes.
func NewPage(file *gamejolt.ResolvedFile, title string) (Page, error) {
	if file == nil || !file.HasAppletClass() {
		return Page{}, &EmissionError{Err: ErrNoClass}
	}
	if file.Filename == "" {
		return Page{}, &EmissionError{Err: ErrNoFilename}
	}
	if title == "" {
		title = file.Title
	}
	if title == "" {
		title = "Game"
	}
	p := Page{
		Title:   title,
		Loader:  Loader,
		Archive: filepath.Base(file.Filename),
		Class:   file.Applet.Class,
		Width:   file.Width,
		Height:  file.Height,
	}
	if p.Width <= 0 {
		p.Width = DefaultWidth
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
	return p, nil
}

func (p Page) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Emit writes the runner page for the applet file into dir
// and returns the page path.
// Nothing is written when the file has no entry class or name.
func Emit(file *gamejolt.ResolvedFile, dir string, title string) (string, error) {
	p, err := NewPage(file, title)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	html, err := p.Render()
	if err != nil {
		return "", &EmissionError{Path: path, Err: err}
	}
	if err = os.MakeDirAll(dir); err != nil {
		return "", &EmissionError{Path: path, Err: err}
	}
	if err = os.WriteFile(path, html, 0644); err != nil {
		return "", &EmissionError{Path: path, Err: err}
	}
	return path, nil
}
