package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"brickstock.GO/api"
	"brickstock.GO/config"
	catalogEntity "brickstock.GO/model/entity/catalog"
	catalogRepo "brickstock.GO/model/repository/catalog"
	inventoryRepo "brickstock.GO/model/repository/inventory"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// AvailabilityResponse for the availability endpoint.
type AvailabilityResponse struct {
	ShapeKey string `json:"shape_key"`
	Name     string `json:"name,omitempty"`
	New      int    `json:"new"`
	Used     int    `json:"used"`
	Total    int    `json:"total"`
}

func getCryptKey() string {
	return config.GetEnv("BRICKSTOCK_CRYPT_KEY", "")
}

// verifyClientSignature validates HMAC-SHA256 signature using constant-time comparison
func verifyClientSignature(clientID, signature, cryptKey string) bool {
	if cryptKey == "" || clientID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(cryptKey))
	mac.Write([]byte(clientID))
	expected := mac.Sum(nil)
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sig)
}

// RegisterRealtimeRoutes sets up the low-latency availability API used by
// the mobile app while scanning.
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/realtime")

	// GET /api/realtime/availability?shape_key=XXX&color_id=N
	g.GET("/availability", func(c echo.Context) error {
		start := time.Now()

		clientID := c.Request().Header.Get("X-Client-ID")
		clientSig := c.Request().Header.Get("X-Client-Sig")
		cryptKey := getCryptKey()

		if cryptKey != "" && !verifyClientSignature(clientID, clientSig, cryptKey) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}

		shapeKey := c.QueryParam("shape_key")
		if shapeKey == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "shape_key required"})
		}
		colorID, _ := strconv.ParseUint(c.QueryParam("color_id"), 10, 32)

		var (
			part    *catalogEntity.Part
			newQty  int
			usedQty int
		)

		// Parallel fetch using errgroup
		eg := new(errgroup.Group)

		eg.Go(func() error {
			p, err := catalogRepo.NewCatalogRepository(db).FindPartByShapeKey(shapeKey)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			part = p
			return err
		})

		eg.Go(func() error {
			var err error
			newQty, usedQty, err = inventoryRepo.NewLotRepository(db).QuantityByShapeKey(shapeKey, uint(colorID))
			return err
		})

		if err := eg.Wait(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))

		if part == nil {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error":               "part not found",
				"request_duration_ms": duration,
			})
		}

		return c.JSON(http.StatusOK, AvailabilityResponse{
			ShapeKey: shapeKey,
			Name:     part.Name,
			New:      newQty,
			Used:     usedQty,
			Total:    newQty + usedQty,
		})
	})
}
