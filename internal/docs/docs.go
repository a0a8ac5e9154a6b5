// Package docs renders the embedded API reference served on the landing page.
package docs

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed README.md
var readme []byte

var shell = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <link rel="preconnect" href="https://fonts.googleapis.com" />
    <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin />
    <link href="https://fonts.googleapis.com/css2?family=Open+Sans&display=swap" rel="stylesheet" />
    <style>
      * { margin: 0; font-family: "Open Sans", sans-serif; }
      body { max-width: 1100px; margin: 0 auto; padding: 50px; }
      li { list-style-type: "✧ "; }
      code { font-family: monospace; background-color: black; color: white; line-height: 30px; }
      pre { border-left: 10px solid lightgrey; margin: 15px 0; padding-left: 10px; background-color: black; color: white; }
      h1, h2, h3, h4 { margin: 30px 0; }
      h2 { border-left: 5px solid #24b1ba; font-weight: bold; padding: 10px 20px; }
      p { line-height: 40px; text-align: justify; }
      table { border-collapse: collapse; }
      td, th { border: 1px solid lightgrey; padding: 5px 15px; }
    </style>
    <title>{{.Title}}</title>
  </head>
  <body>
    <div>
{{.Body}}
    </div>
  </body>
</html>
`))

// Page renders markdown into the landing page shell.
func Page(title string, markdown []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert(markdown, &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var out bytes.Buffer
	err := shell.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return out.Bytes(), nil
}

// Home renders the embedded API reference.
func Home() ([]byte, error) {
	return Page("Marketplace API", readme)
}
