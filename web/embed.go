// Package web embeds the static demo client and provides an HTTP handler
// that serves it. The page drives the chat endpoint and the relay socket; it
// is a development aid, not the production frontend.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:public
var publicFS embed.FS

// Handler returns an http.Handler that serves the embedded demo client.
func Handler() http.Handler {
	subFS, err := fs.Sub(publicFS, "public")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(subFS))
}
