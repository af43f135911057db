package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kverlaine/pitwall/internal/garage"
	"github.com/kverlaine/pitwall/internal/models"
	"github.com/kverlaine/pitwall/internal/session"
	"github.com/kverlaine/pitwall/internal/setup"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, owner string) {
	api := router.Group("/api")

	api.GET("/vehicles", handleVehicleList(db, owner))
	api.GET("/vehicles/:id", handleVehicleDetail(db, owner))
	api.GET("/tracks", handleTrackList(db))
	api.GET("/sessions", handleSessionList(db, owner))
	api.GET("/sessions/:id", handleSessionDetail(db, owner))
}

func handleVehicleList(db *gorm.DB, owner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicles, err := garage.List(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
	}
}

func handleVehicleDetail(db *gorm.DB, owner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicle, err := garage.Get(db, owner, c.Param("id"))
		if err != nil {
			status(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"vehicle":           vehicle,
			"available_modules": setup.AvailableModules(vehicle.Type),
		})
	}
}

func handleTrackList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tracks []models.Track
		if err := db.Where("active = ?", true).Order("name ASC").Find(&tracks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tracks": tracks})
	}
}

func handleSessionList(db *gorm.DB, owner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := session.List(db, owner, c.Query("vehicle_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}

// handleSessionDetail returns the session, its resolved module state, and
// the diff against the nearest earlier session. ?changed_only=true filters
// the diff to changed rows, mirroring the page's default toggle state.
func handleSessionDetail(db *gorm.DB, owner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := session.Get(db, owner, c.Param("id"))
		if err != nil {
			status(c, err)
			return
		}

		vehicle, err := garage.Get(db, owner, sess.VehicleID)
		if err != nil {
			status(c, err)
			return
		}

		cmp, err := session.CompareWithPrevious(db, sess, vehicle.Type)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := cmp.Rows
		if c.Query("changed_only") == "true" {
			rows = setup.FilterChanged(rows)
		}

		resp := gin.H{
			"session":         sess,
			"vehicle":         vehicle,
			"enabled_modules": cmp.CurrentEnabled,
			"compare_rows":    rows,
		}
		if cmp.Previous != nil {
			resp["previous_session"] = cmp.Previous
			resp["previous_enabled_modules"] = cmp.PreviousEnabled
		}
		c.JSON(http.StatusOK, resp)
	}
}

// status maps store-layer errors to HTTP codes: not-found text becomes 404,
// anything else 500.
func status(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	if strings.Contains(err.Error(), "not found") {
		code = http.StatusNotFound
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
