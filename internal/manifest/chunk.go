package manifest

import "strings"

// Chunk describes one manifest entry: the emitted file plus its stylesheet,
// asset and import dependency lists. Field names follow the manifest JSON
// emitted by Vite; unknown fields are ignored during parsing.
type Chunk struct {
	File           string   `json:"file"`
	Src            string   `json:"src,omitempty"`
	IsEntry        bool     `json:"isEntry,omitempty"`
	IsDynamicEntry bool     `json:"isDynamicEntry,omitempty"`
	CSS            []string `json:"css,omitempty"`
	Assets         []string `json:"assets,omitempty"`
	Imports        []string `json:"imports,omitempty"`
	DynamicImports []string `json:"dynamicImports,omitempty"`
}

// Source returns the original source path of the chunk. ok is false when the
// manifest did not record one; callers should not inspect Src directly.
func (c Chunk) Source() (src string, ok bool) {
	return c.Src, c.Src != ""
}

// withBase returns a copy of c with every path-valued field prefixed by base.
// The entry flags pass through unchanged.
func (c Chunk) withBase(base string) Chunk {
	out := c
	out.File = joinBase(base, c.File)
	if c.Src != "" {
		out.Src = joinBase(base, c.Src)
	}
	out.CSS = prefixAll(base, c.CSS)
	out.Assets = prefixAll(base, c.Assets)
	out.Imports = prefixAll(base, c.Imports)
	out.DynamicImports = prefixAll(base, c.DynamicImports)
	return out
}

// joinBase joins base and p with exactly one slash between them.
func joinBase(base, p string) string {
	if strings.HasSuffix(base, "/") {
		return base + p
	}
	return base + "/" + p
}

func prefixAll(base string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = joinBase(base, p)
	}
	return out
}
