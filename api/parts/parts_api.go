package parts

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickstock.GO/api"
	catalogRepo "brickstock.GO/model/repository/catalog"
	inventoryRepo "brickstock.GO/model/repository/inventory"
)

func init() {
	api.RegisterModule(RegisterPartRoutes)
}

func RegisterPartRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/parts")

	// GET /api/parts/:shapeKey – canonical part with its source mappings and lots.
	g.GET("/:shapeKey", func(c echo.Context) error {
		catalogs := catalogRepo.NewCatalogRepository(db)
		part, err := catalogs.FindPartByShapeKey(c.Param("shapeKey"))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		mappings, err := catalogs.PartSourceMappings(part.PartID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		lots, err := inventoryRepo.NewLotRepository(db).List(part.PartID, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"part":       part,
			"source_ids": mappings,
			"lots":       lots,
		})
	})
}
