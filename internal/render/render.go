// Package render builds the HTML that references built assets: stylesheet
// links, modulepreload hints and the module script tag for a manifest entry,
// or the Vite dev-server equivalents while live-serving is active.
package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/perch-labs/vitelink/internal/manifest"
)

// Resolver is the subset of the manifest resolver the renderer needs.
type Resolver interface {
	Lookup(key string) (manifest.Chunk, bool)
	DevMode() bool
}

// Renderer turns manifest entries into the tags a page needs to load them.
type Renderer struct {
	resolver Resolver
	devURL   string
}

// New creates a Renderer. devURL is the Vite dev server origin used when the
// resolver is in dev mode.
func New(resolver Resolver, devURL string) *Renderer {
	return &Renderer{resolver: resolver, devURL: strings.TrimSuffix(devURL, "/")}
}

// Tags returns the tags needed to load entry: stylesheet links for the entry
// and its statically imported chunks, modulepreload links for the imports,
// and the module script itself. In dev mode it returns the Vite client plus
// the entry served from the dev server instead. An entry missing from the
// manifest yields no tags.
func (r *Renderer) Tags(entry string) template.HTML {
	var b strings.Builder

	if r.resolver.DevMode() {
		writeScript(&b, r.devURL+"/@vite/client")
		writeScript(&b, r.devURL+"/"+entry)
		return template.HTML(b.String())
	}

	chunk, ok := r.resolver.Lookup(entry)
	if !ok {
		return ""
	}

	for _, href := range r.stylesheets(entry, chunk) {
		fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%s\">\n", template.HTMLEscapeString(href))
	}
	for _, imp := range chunk.Imports {
		if ic, ok := r.resolver.Lookup(imp); ok {
			fmt.Fprintf(&b, "<link rel=\"modulepreload\" href=\"%s\">\n", template.HTMLEscapeString(assetHref(ic.File)))
		}
	}
	writeScript(&b, assetHref(chunk.File))

	return template.HTML(b.String())
}

// stylesheets collects the CSS of chunk and of its statically imported
// chunks, depth-first, de-duplicated, in first-seen order.
func (r *Renderer) stylesheets(key string, chunk manifest.Chunk) []string {
	seenChunk := map[string]bool{key: true}
	seenCSS := make(map[string]bool)
	var out []string

	var walk func(c manifest.Chunk)
	walk = func(c manifest.Chunk) {
		for _, css := range c.CSS {
			href := assetHref(css)
			if !seenCSS[href] {
				seenCSS[href] = true
				out = append(out, href)
			}
		}
		for _, imp := range c.Imports {
			if seenChunk[imp] {
				continue
			}
			seenChunk[imp] = true
			if ic, ok := r.resolver.Lookup(imp); ok {
				walk(ic)
			}
		}
	}
	walk(chunk)

	return out
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
{{.Tags}}</head>
  <body>
    <div id="app"></div>
  </body>
</html>
`))

type pageData struct {
	Title string
	Tags  template.HTML
}

// Page writes a full HTML document that boots the given manifest entry.
func (r *Renderer) Page(w io.Writer, title, entry string) error {
	return pageTemplate.Execute(w, pageData{Title: title, Tags: r.Tags(entry)})
}

func writeScript(b *strings.Builder, src string) {
	fmt.Fprintf(b, "<script type=\"module\" src=\"%s\"></script>\n", template.HTMLEscapeString(src))
}

// assetHref makes a manifest path usable as a document-absolute URL.
func assetHref(p string) string {
	if strings.HasPrefix(p, "/") || strings.Contains(p, "://") {
		return p
	}
	return "/" + p
}
