// Package web contiene las vistas HTML y los estáticos, embebidos en el binario.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/template/html/v2"

	"github.com/jhoicas/megastore-web/internal/application/dto"
)

//go:embed views
var views embed.FS

//go:embed static
var static embed.FS

// Engine motor html/template de Fiber sobre las vistas embebidas. reload vuelve a parsear
// las plantillas en cada render (solo development).
func Engine(reload bool) *html.Engine {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.Reload(reload)
	engine.AddFuncMap(map[string]interface{}{
		"dict":    dict,
		"pageURL": pageURL,
		"join":    strings.Join,
	})
	return engine
}

// Static estáticos (JS y CSS) para el middleware filesystem.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// dict arma un mapa con pares clave/valor para pasar varios datos a un partial.
func dict(pairs ...interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if k, ok := pairs[i].(string); ok {
			out[k] = pairs[i+1]
		}
	}
	return out
}

// pageURL enlace a la página n de un listado conservando búsqueda y filtros.
// q puede ser un dto.ListQuery o nil (solo ?page=).
func pageURL(base string, q interface{}, page int) string {
	v := url.Values{}
	if lq, ok := q.(dto.ListQuery); ok {
		if lq.Search != "" {
			v.Set("q", lq.Search)
		}
		setID(v, "category", lq.CategoryID)
		setID(v, "subcategory", lq.SubcategoryID)
		setID(v, "brand", lq.BrandID)
		if lq.Role != "" {
			v.Set("role", lq.Role)
		}
	}
	v.Set("page", strconv.Itoa(page))
	return base + "?" + v.Encode()
}

func setID(v url.Values, key string, id int64) {
	if id != 0 {
		v.Set(key, strconv.FormatInt(id, 10))
	}
}
