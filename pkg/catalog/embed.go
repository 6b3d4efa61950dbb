package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data/catalog.yaml
var embeddedCatalog embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
)

// EmbeddedFS returns the bundled catalog assets.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "data")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns a copy of the compiled-in catalog.
func Default() Catalog {
	defaultOnce.Do(func() {
		c, err := LoadFS(EmbeddedFS(), "catalog.yaml")
		if err != nil {
			panic(err)
		}
		if err := Validate(c); err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog.Clone()
}
