// Package manifest resolves Vite build manifests into request-time asset
// references. A manifest maps logical entry names (e.g. "src/main.ts") to the
// hashed filenames Vite emitted for them, together with their stylesheet,
// static-asset and chunk-import dependency lists.
//
// The Resolver loads the manifest exactly once at construction and is
// immutable afterwards, so a single instance can be shared across all request
// handlers without locking:
//
//	res, err := manifest.New(manifest.Options{
//	    Root:     "dist",
//	    BasePath: "static/v1",
//	    Logger:   logger,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	chunk, ok := res.Lookup("src/main.ts")
//
// When the Vite dev server is active (Options.DevServer) the resolver holds
// no entries and every lookup misses: assets are served live by Vite, so
// manifest data must not reach rendered markup in that mode.
package manifest
