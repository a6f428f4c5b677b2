package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/tweet-gallery/internal/media"
	"github.com/orgball2608/tweet-gallery/pkg/formatter"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// StaticRoots maps the media roots used in card addresses to directories on
// disk.
type StaticRoots struct {
	OutputDir  string
	MediaRoot  string
	AvatarRoot string
}

func templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"progress": formatter.Progress,
		"handle":   formatter.Handle,
	}).ParseFS(templatesFS, "templates/*.html"))
}

// SetupRoutes registers the page, the API and the static media routes.
func SetupRoutes(r *gin.Engine, h *Handler, roots StaticRoots) {
	r.SetHTMLTemplate(templates())

	r.GET("/", h.Index)
	r.GET("/healthz", h.Healthz)

	assets, _ := fs.Sub(assetsFS, "assets")
	r.StaticFS("/assets", http.FS(assets))

	for _, root := range []string{roots.MediaRoot, roots.AvatarRoot} {
		if root == "" || media.IsRemote(root) {
			continue
		}
		r.Static(path.Join("/", root), filepath.Join(roots.OutputDir, filepath.FromSlash(root)))
	}

	api := r.Group("/api")
	api.GET("/view", h.GetView)
	api.POST("/more", h.More)
	api.POST("/layout", h.Layout)
	api.POST("/refresh", h.Refresh)
	api.POST("/cards/:id/events", h.CardEvent)
}

