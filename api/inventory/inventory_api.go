package inventory

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickstock.GO/api"
	inventoryRepo "brickstock.GO/model/repository/inventory"
	inventoryService "brickstock.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/inventory")

	// POST /api/inventory/import – vendor XML export upload (multipart "file"
	// plus "mode" form field, or a raw XML body with ?mode=).
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		mode, err := inventoryService.ParseMode(firstNonEmpty(c.FormValue("mode"), c.QueryParam("mode")))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		opts := inventoryService.ImportOptions{Source: "vendorxml", Mode: mode}
		body := c.Request().Body
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			defer f.Close()
			body = f
			opts.FileName = fh.Filename
		}

		summary, err := inventoryService.ImportVendorExport(db, body, opts)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, inventoryService.ErrNoLineItems) {
				status = http.StatusBadRequest
			}
			return c.JSON(status, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, summary)
	})

	// GET /api/inventory/lots – current lots, optional part_id/color_id filter.
	g.GET("/lots", func(c echo.Context) error {
		partID, _ := strconv.ParseUint(c.QueryParam("part_id"), 10, 32)
		colorID, _ := strconv.ParseUint(c.QueryParam("color_id"), 10, 32)
		lots, err := inventoryRepo.NewLotRepository(db).List(uint(partID), uint(colorID))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"lots": lots, "count": len(lots)})
	})

	// GET /api/inventory/batches – import history, newest first.
	g.GET("/batches", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		batches, err := inventoryRepo.NewBatchRepository(db).List(limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"batches": batches, "count": len(batches)})
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
