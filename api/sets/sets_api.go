package sets

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickstock.GO/api"
	"brickstock.GO/service/catalogapi"
	inventoryService "brickstock.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterSetRoutes)
}

// Client is the catalog client used by the fetch endpoint. One per process:
// it owns the minifig detail cache and the rate-limit cooldown.
var client = catalogapi.NewClientFromEnv()

func RegisterSetRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/sets")

	// POST /api/sets/:setID/fetch – pull a set inventory from the catalog
	// service and import it as one batch.
	g.POST("/:setID/fetch", func(c echo.Context) error {
		start := time.Now()
		setID := c.Param("setID")

		mode, err := inventoryService.ParseMode(c.QueryParam("mode"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		summary, err := inventoryService.ImportRemoteSet(
			c.Request().Context(), db, client, setID, mode, c.QueryParam("condition"))
		duration := time.Since(start).Milliseconds()
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, inventoryService.ErrNoLineItems) {
				status = http.StatusNotFound
			}
			return c.JSON(status, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}
		return c.JSON(http.StatusOK, summary)
	})
}
