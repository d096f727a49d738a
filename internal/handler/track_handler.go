package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/criticalsnake/tracks-backend-go/internal/dataset"
	"github.com/criticalsnake/tracks-backend-go/internal/export"
	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/reconstruct"
	"github.com/criticalsnake/tracks-backend-go/internal/service"
	"github.com/criticalsnake/tracks-backend-go/pkg/response"
)

// TrackHandler handles HTTP requests for track reconstruction
type TrackHandler struct {
	trackService *service.TrackService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *service.TrackService) *TrackHandler {
	return &TrackHandler{
		trackService: trackService,
	}
}

// Reconstruct handles POST /api/v1/tracks/reconstruct
func (h *TrackHandler) Reconstruct(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "Failed to read request body")
		return
	}

	ds, err := dataset.Parse(body)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rec, err := h.trackService.Reconstruct(ds)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, rec)
}

// GetTracks handles GET /api/v1/tracks
func (h *TrackHandler) GetTracks(c *gin.Context) {
	rec, ok := h.reconstructStored(c)
	if !ok {
		return
	}
	response.Success(c, rec)
}

// GetGeoJSON handles GET /api/v1/tracks/geojson. The body is a bare GeoJSON
// FeatureCollection; simplify sets a Douglas-Peucker tolerance in meters.
func (h *TrackHandler) GetGeoJSON(c *gin.Context) {
	tolerance, err := strconv.ParseFloat(c.DefaultQuery("simplify", "0"), 64)
	if err != nil || tolerance < 0 {
		response.BadRequest(c, "Invalid simplify parameter")
		return
	}

	rec, ok := h.reconstructStored(c)
	if !ok {
		return
	}

	fc := export.FeatureCollection(rec.Tracks)
	export.Simplify(fc, tolerance)
	c.Header("X-Run-Id", rec.RunID)
	c.JSON(http.StatusOK, fc)
}

func (h *TrackHandler) reconstructStored(c *gin.Context) (*service.Reconstruction, bool) {
	var filter models.TrackFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return nil, false
	}
	if filter.From > 0 && filter.To > 0 && filter.From > filter.To {
		response.BadRequest(c, "from must not be after to")
		return nil, false
	}

	rec, err := h.trackService.ReconstructStored(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return rec, true
}

// writeError maps service errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reconstruct.ErrUnorderedDataset):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, reconstruct.ErrInvalidOptions):
		response.InternalError(c, err.Error())
	case errors.Is(err, service.ErrNoArchive):
		response.ServiceUnavailable(c, err.Error())
	default:
		log.Printf("[TrackHandler] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.InternalError(c, "Internal server error")
	}
}
