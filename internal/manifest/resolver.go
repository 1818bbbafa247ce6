package manifest

import (
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultManifestName is the manifest location Vite 5+ uses inside the build
// output directory. Vite 2–4 wrote manifest.json at the output root instead;
// New falls back to the basename when the .vite/ variant is absent.
const DefaultManifestName = ".vite/manifest.json"

// viteHiddenDir is the hidden subdirectory prefix introduced by Vite 5.
const viteHiddenDir = ".vite/"

// Options configures a Resolver.
type Options struct {
	// Root is the directory holding the built, web-servable assets.
	Root string

	// ManifestName is the manifest path relative to Root (and the base path,
	// when one is set). Defaults to DefaultManifestName.
	ManifestName string

	// BasePath, when non-empty, is prepended to every manifest key and every
	// path field of every chunk. It mirrors Vite's "base" build option.
	BasePath string

	// DevServer marks the Vite dev server as active. The resolver then skips
	// the manifest entirely; assets are served live, not from the build.
	DevServer bool

	// Logger receives resolver warnings. Defaults to slog.Default().
	Logger *slog.Logger

	// Notices suppresses repeated construction-time notices across resolver
	// instances. When nil the resolver uses a private instance.
	Notices *Notices
}

// Resolver maps logical entry names to built asset chunks. It is immutable
// after construction and safe for concurrent use without locking.
type Resolver struct {
	table  map[string]Chunk
	keys   []string // sorted
	dev    bool
	logger *slog.Logger
}

// New loads the manifest according to opts and returns the resolver.
//
// A missing manifest file is not an error: the resolver is empty and a
// one-shot warning is logged. A manifest that exists but fails to parse is an
// error. When opts.DevServer is set no file access happens at all.
func New(opts Options) (*Resolver, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notices := opts.Notices
	if notices == nil {
		notices = &Notices{}
	}

	if opts.DevServer {
		notices.announce(func() {
			logger.Info("vite dev server active; manifest lookups are disabled")
		})
		return &Resolver{dev: true, logger: logger}, nil
	}

	name := opts.ManifestName
	if name == "" {
		name = DefaultManifestName
	}
	dir := filepath.Join(opts.Root, strings.TrimPrefix(opts.BasePath, "/"))

	path := filepath.Join(dir, filepath.FromSlash(name))
	if _, err := os.Stat(path); os.IsNotExist(err) && strings.HasPrefix(name, viteHiddenDir) {
		// Vite 2–4 wrote the manifest at the output root.
		path = filepath.Join(dir, filepath.Base(name))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			notices.announce(func() {
				logger.Warn("vite manifest not found; was the frontend built?",
					slog.String("path", path))
			})
			return &Resolver{logger: logger}, nil
		}
		return nil, fmt.Errorf("reading vite manifest %q: %w", path, err)
	}

	var table map[string]Chunk
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing vite manifest %q: %w", path, err)
	}

	if opts.BasePath != "" {
		rewritten := make(map[string]Chunk, len(table))
		for key, chunk := range table {
			rewritten[joinBase(opts.BasePath, key)] = chunk.withBase(opts.BasePath)
		}
		table = rewritten
	}

	return &Resolver{
		table:  table,
		keys:   slices.Sorted(maps.Keys(table)),
		logger: logger,
	}, nil
}

// Lookup returns the chunk for the given entry key.
//
// While the dev server is active every lookup misses: the dev server serves
// all assets live, so a caller asking for manifest data is on a wrong code
// path and a warning is logged to flag it. A key absent from the manifest
// also logs a warning and misses; callers render nothing for that entry.
func (r *Resolver) Lookup(key string) (Chunk, bool) {
	if r.dev {
		r.logger.Warn("manifest lookup while vite dev server is active",
			slog.String("key", key))
		return Chunk{}, false
	}
	chunk, ok := r.table[key]
	if !ok {
		r.logger.Warn("manifest entry not found", slog.String("key", key))
		return Chunk{}, false
	}
	return chunk, true
}

// Contains reports whether key is present, without logging.
func (r *Resolver) Contains(key string) bool {
	_, ok := r.table[key]
	return ok
}

// Keys returns all entry keys in sorted order.
func (r *Resolver) Keys() []string {
	return slices.Clone(r.keys)
}

// Len returns the number of entries.
func (r *Resolver) Len() int {
	return len(r.table)
}

// All returns an iterator over all entries in sorted key order. The sequence
// can be ranged over any number of times.
func (r *Resolver) All() iter.Seq2[string, Chunk] {
	return func(yield func(string, Chunk) bool) {
		for _, key := range r.keys {
			if !yield(key, r.table[key]) {
				return
			}
		}
	}
}

// DevMode reports whether the resolver was built with the dev server active.
func (r *Resolver) DevMode() bool {
	return r.dev
}
