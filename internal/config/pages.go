package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Page binds a server route to a manifest entry.
type Page struct {
	// Route is the URL path the page is served at. Must start with "/".
	Route string `yaml:"route"`

	// Entry is the manifest key whose assets the page loads.
	Entry string `yaml:"entry"`

	// Title is the HTML document title. Defaults to Entry.
	Title string `yaml:"title"`
}

// pagesFile is the on-disk shape of the page registry.
type pagesFile struct {
	Pages []Page `yaml:"pages"`
}

// PageRegistry holds the server-rendered pages in file order.
type PageRegistry struct {
	pages []Page
}

// All returns the pages in registry order.
func (r *PageRegistry) All() []Page {
	return r.pages
}

// Len returns the number of registered pages.
func (r *PageRegistry) Len() int {
	return len(r.pages)
}

// LoadPageRegistry reads the page registry YAML at filePath and returns a
// populated PageRegistry. If the file does not exist, an empty registry is
// returned (not an error): the server then only serves static assets.
func LoadPageRegistry(filePath string) (*PageRegistry, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // path is operator-configured
	if err != nil {
		if os.IsNotExist(err) {
			return &PageRegistry{}, nil
		}
		return nil, fmt.Errorf("reading page registry %q: %w", filePath, err)
	}

	var raw pagesFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing page registry %q: %w", filePath, err)
	}

	for i, p := range raw.Pages {
		if p.Route == "" || p.Entry == "" {
			return nil, fmt.Errorf("page registry %q: page %d must set both route and entry", filePath, i)
		}
		if !strings.HasPrefix(p.Route, "/") {
			return nil, fmt.Errorf("page registry %q: route %q must start with /", filePath, p.Route)
		}
		if p.Title == "" {
			raw.Pages[i].Title = p.Entry
		}
	}

	return &PageRegistry{pages: raw.Pages}, nil
}
