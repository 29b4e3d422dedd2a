package html

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	catalogRepo "brickstock.GO/model/repository/catalog"
	inventoryRepo "brickstock.GO/model/repository/inventory"
)

// partPage is a minimal server-rendered view for checking a part from a
// browser on the same network as the device. The app itself talks JSON; this
// page exists for quick eyeballing only.
var partPage = template.Must(template.New("part").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Part.ShapeKey}} – BrickStock</title>
<style>body{font-family:sans-serif;margin:2em}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:4px 10px}</style>
</head>
<body>
<h1>{{if .Part.Name}}{{.Part.Name}}{{else}}{{.Part.ShapeKey}}{{end}}</h1>
<p>Shape key: <code>{{.Part.ShapeKey}}</code>{{if .Part.IsMinifigPart}} (minifig part){{end}}</p>
{{if .Part.ImageURL}}<img src="{{.Part.ImageURL}}" alt="{{.Part.ShapeKey}}" style="max-width:192px">{{end}}
<h2>Lots</h2>
{{if .Lots}}
<table>
<tr><th>Color</th><th>Condition</th><th>Quantity</th><th>Notes</th></tr>
{{range .Lots}}<tr><td>{{.ColorID}}</td><td>{{.Condition}}</td><td>{{.Quantity}}</td><td>{{.Notes}}</td></tr>
{{end}}
</table>
{{else}}<p>No lots on hand.</p>{{end}}
</body>
</html>`))

// RegisterPartHTMLRoutes registers the HTML part view.
func RegisterPartHTMLRoutes(e *echo.Echo, db *gorm.DB) {
	e.GET("/part/:shapeKey", func(c echo.Context) error {
		shapeKey := strings.TrimSpace(c.Param("shapeKey"))
		part, err := catalogRepo.NewCatalogRepository(db).FindPartByShapeKey(shapeKey)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.String(http.StatusNotFound, "part not found")
		}
		if err != nil {
			log.Println("html: part load:", err)
			return c.String(http.StatusInternalServerError, "error loading part")
		}
		lots, err := inventoryRepo.NewLotRepository(db).List(part.PartID, 0)
		if err != nil {
			log.Println("html: lots load:", err)
			return c.String(http.StatusInternalServerError, "error loading lots")
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return partPage.Execute(c.Response(), map[string]interface{}{
			"Part": part,
			"Lots": lots,
		})
	})
}
