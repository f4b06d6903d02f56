// Package web serves the browser front end.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
)

//go:embed static
var static embed.FS

// Files returns the front end: dir when set, the embedded copy otherwise.
func Files(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Handler serves files with caching headers. HTML is always revalidated so a
// new build is picked up on reload.
func Handler(files fs.FS) http.Handler {
	fileServer := http.FileServer(http.FS(files))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch ext := path.Ext(r.URL.Path); {
		case r.URL.Path == "/" || ext == ".html":
			w.Header().Set("Cache-Control", "no-cache")
		default:
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		fileServer.ServeHTTP(w, r)
	})
}
