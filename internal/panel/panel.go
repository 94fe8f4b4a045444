package panel

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

//go:embed web/*
var content embed.FS

// apiPrefix is never answered with the index page.
const apiPrefix = "/api/"

// Handler returns an http.Handler that serves the timeline screen.
//
// When dir names an existing directory, assets are served from it so the
// page can be edited without a rebuild. Otherwise the embedded assets are
// used.
//
// Unknown paths fall back to index.html. Paths under /api/ get a 404.
//
// Returns:
//   - http.Handler: The asset handler
//   - error: If the embedded assets cannot be loaded (build error)
func Handler(dir string) (http.Handler, error) {
	var fileSystem http.FileSystem

	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			fileSystem = http.Dir(dir)
		}
	}

	if fileSystem == nil {
		webFS, err := fs.Sub(content, "web")
		if err != nil {
			return nil, fmt.Errorf("panel: loading embedded assets: %w", err)
		}
		fileSystem = http.FS(webFS)
	}

	fileServer := http.FileServer(fileSystem)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upath := path.Clean(r.URL.Path)
		if strings.HasPrefix(upath+"/", apiPrefix) {
			http.NotFound(w, r)
			return
		}

		// The script and stylesheet are not content-hashed.
		w.Header().Set("Cache-Control", "no-cache, must-revalidate")

		if upath == "." || upath == "/" {
			fileServer.ServeHTTP(w, r)
			return
		}

		f, err := fileSystem.Open(upath[1:])
		if err != nil {
			r.URL.Path = "/"
			fileServer.ServeHTTP(w, r)
			return
		}
		f.Close()

		fileServer.ServeHTTP(w, r)
	}), nil
}
