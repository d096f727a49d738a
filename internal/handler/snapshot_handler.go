package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/service"
	"github.com/criticalsnake/tracks-backend-go/pkg/response"
)

// SnapshotHandler handles ingestion into the ping archive
type SnapshotHandler struct {
	trackService *service.TrackService
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(trackService *service.TrackService) *SnapshotHandler {
	return &SnapshotHandler{
		trackService: trackService,
	}
}

// Create handles POST /api/v1/snapshots
func (h *SnapshotHandler) Create(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		response.BadRequest(c, "Invalid snapshot")
		return
	}
	if len(snapshot.Points) == 0 {
		response.BadRequest(c, "Snapshot has no points")
		return
	}

	stamp, err := h.trackService.Ingest(c.Request.Context(), snapshot)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, gin.H{
		"snapshotTime": stamp,
		"points":       len(snapshot.Points),
	})
}

// Count handles GET /api/v1/snapshots/count
func (h *SnapshotHandler) Count(c *gin.Context) {
	stats, err := h.trackService.ArchiveStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, stats)
}
