// Package assets provides the stylesheet and page templates of generated books.
// Assets can be loaded from embedded files or custom filesystem paths.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - chain: custom directory, then embedded
//
// AssetResolver is the loader used by the generator. A custom directory only
// needs the files it overrides; anything it lacks comes from the embedded set.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # e.g. default.css
//	└── templates/
//	    └── {name}.html          # index.html (chapter page), blank.html (placeholder page)
//
// Templates are html/template sources producing XHTML. The index template
// receives title, body and stylesheet; the blank template receives title.
//
// # Security
//
// Asset names are limited to letters, digits, '-' and '_'. FilesystemLoader
// opens files through os.Root and refuses links leading out of its directory.
package assets
