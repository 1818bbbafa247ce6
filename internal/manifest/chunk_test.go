package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinBase(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"plain", "static/v1", "main.js", "static/v1/main.js"},
		{"trailing slash", "static/v1/", "main.js", "static/v1/main.js"},
		{"leading slash base", "/assets", "main.js", "/assets/main.js"},
		{"root base", "/", "main.js", "/main.js"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinBase(tt.base, tt.path))
		})
	}
}

func TestChunk_WithBase(t *testing.T) {
	chunk := Chunk{
		File:           "main-a1b2.js",
		Src:            "main.js",
		IsEntry:        true,
		CSS:            []string{"main.css", "extra.css"},
		Assets:         []string{"logo.png"},
		Imports:        []string{"_dep.js"},
		DynamicImports: []string{"lazy.js"},
	}

	got := chunk.withBase("app")

	assert.Equal(t, "app/main-a1b2.js", got.File)
	assert.Equal(t, "app/main.js", got.Src)
	assert.True(t, got.IsEntry)
	assert.Equal(t, []string{"app/main.css", "app/extra.css"}, got.CSS)
	assert.Equal(t, []string{"app/logo.png"}, got.Assets)
	assert.Equal(t, []string{"app/_dep.js"}, got.Imports)
	assert.Equal(t, []string{"app/lazy.js"}, got.DynamicImports)

	// The receiver is untouched.
	assert.Equal(t, "main-a1b2.js", chunk.File)
	assert.Equal(t, []string{"main.css", "extra.css"}, chunk.CSS)
}

func TestChunk_WithBase_EmptyOptionalFields(t *testing.T) {
	got := Chunk{File: "main-a1b2.js"}.withBase("app")

	assert.Equal(t, "app/main-a1b2.js", got.File)
	assert.Empty(t, got.Src)
	assert.Nil(t, got.CSS)
	assert.Nil(t, got.Imports)
}

func TestChunk_Source(t *testing.T) {
	src, ok := Chunk{Src: "src/main.ts"}.Source()
	assert.True(t, ok)
	assert.Equal(t, "src/main.ts", src)

	_, ok = Chunk{}.Source()
	assert.False(t, ok)
}
