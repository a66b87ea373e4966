package routes

import (
	"errors"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/web"
)

const (
	staticPrefix       = "/static"
	staticCacheControl = "public, max-age=86400"
)

// assetFS serves embedded files only; directories fall through to the router.
type assetFS struct {
	static.ServeFileSystem
}

func (a assetFS) Exists(prefix, path string) bool {
	rel := strings.TrimPrefix(path, prefix)
	if rel == path || rel == "" || rel == "/" {
		return false
	}

	f, err := a.Open(rel)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

func staticAssets() (gin.HandlerFunc, error) {
	files := static.EmbedFolder(web.StaticFS, "static")
	if files == nil {
		return nil, errors.New("failed to embed folder: static")
	}

	serve := static.Serve(staticPrefix, assetFS{ServeFileSystem: files})

	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, staticPrefix+"/") {
			return
		}
		c.Header("Cache-Control", staticCacheControl)
		// unknown assets fall through to NoRoute, which resets the header
		serve(c)
	}, nil
}
