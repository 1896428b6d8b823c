package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness and readiness probes. Liveness only
// proves the process answers; readiness also requires the record store
// to be reachable, so orchestrators stop routing traffic when postgres
// is down.
type HealthHandler struct {
	dbPing func() error
}

// NewHealthHandler constructs a HealthHandler.
//
// Parameters:
//   - dbPing (func() error): Connectivity check for the record store,
//     typically (*sql.DB).Ping. A nil dbPing makes readiness unconditional.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(dbPing func() error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

// Register mounts GET /healthz and GET /readyz on the router.
func (h *HealthHandler) Register(r *gin.Engine) {
	// @Summary      Liveness probe
	// @Description  Returns OK whenever the process is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", h.liveness)

	// @Summary      Readiness probe
	// @Description  Returns ready when the record store is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", h.readiness)
}

func (h *HealthHandler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) readiness(c *gin.Context) {
	if h.dbPing != nil {
		if err := h.dbPing(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
