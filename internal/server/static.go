package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const publicDir = "./public"

func serveIndex(c *gin.Context) {
	c.File(filepath.Join(publicDir, "index.html"))
}

func (s *Server) registerUIRoutes() {
	s.engine.GET("/", serveIndex)

	s.engine.NoRoute(func(c *gin.Context) {
		// API misses stay JSON
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, errorResponse{Error: errorPayload{
				Type:    "not_found",
				Message: "not found",
			}})
			return
		}

		// static assets (vite)
		if path, ok := resolveStatic(publicDir, c.Request.URL.Path); ok {
			c.File(path)
			return
		}

		// SPA fallback
		serveIndex(c)
	})
}

// resolveStatic maps a request path onto a file under dir. Cleaning
// with a rooted path keeps ".." segments from escaping dir, and the
// returned path is the one that was checked.
func resolveStatic(dir, reqPath string) (string, bool) {
	clean := filepath.Clean("/" + reqPath)
	if clean == "/" {
		return "", false
	}

	fullPath := filepath.Join(dir, clean)

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return "", false
	}
	return fullPath, true
}
