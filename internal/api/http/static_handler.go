package http

import (
	"embed"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
)

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded stylesheet and scripts
type StaticHandler struct {
	files embed.FS
}

// NewStaticHandler creates a new static asset handler
func NewStaticHandler(files embed.FS) *StaticHandler {
	return &StaticHandler{
		files: files,
	}
}

// HandleAsset handles GET requests for /static/{name}
func (h *StaticHandler) HandleAsset(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" || filepath.Base(name) != name {
		http.Error(w, "Missing asset name", http.StatusBadRequest)
		return
	}

	// Read file
	file, err := h.files.Open("static/" + name)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	// Determine content type from file extension
	contentType := "application/octet-stream"
	switch filepath.Ext(name) {
	case ".css":
		contentType = "text/css; charset=utf-8"
	case ".js":
		contentType = "text/javascript; charset=utf-8"
	case ".svg":
		contentType = "image/svg+xml"
	case ".png":
		contentType = "image/png"
	}

	// Set headers
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")

	// Stream file
	io.Copy(w, file)
}

// RegisterStaticRoutes registers the embedded asset endpoint
func RegisterStaticRoutes(router *mux.Router) {
	handler := NewStaticHandler(staticFS)
	router.HandleFunc("/static/{name}", handler.HandleAsset).Methods("GET").Name("static")
}
