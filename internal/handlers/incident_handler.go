package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/sdma/internal/errors"
	"github.com/stwalsh4118/sdma/internal/middleware"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/services"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

// IncidentHandler handles incident entry.
type IncidentHandler struct {
	service services.IncidentService
}

// NewIncidentHandler creates a new IncidentHandler instance.
func NewIncidentHandler(service services.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

// CreateIncidentRequest is the body of POST /api/v1/incidents. The district
// is taken from the signed-in user, never from the body.
type CreateIncidentRequest struct {
	DisasterSubtypeID *int    `json:"disasterSubtypeId"`
	DamageTypeID      *int    `json:"damageTypeId"`
	DamageSubtypeID   *int    `json:"damageSubtypeId"`
	CampName          string  `json:"campName"`
	DamageQuantity    float64 `json:"damageQuantity" binding:"gte=0"`
	TehsilCode        int     `json:"tehsilCode" binding:"required"`
	DisasterTypeID    int     `json:"disasterTypeId" binding:"required"`
	Month             int     `json:"month" binding:"required,month"`
	Year              int     `json:"year" binding:"required"`
	CampCount         int     `json:"campCount" binding:"gte=0"`
	ShelteredCount    int     `json:"shelteredCount" binding:"gte=0"`
}

// IncidentResponse is a stored incident and the unit of its quantity.
type IncidentResponse struct {
	Incident models.Incident `json:"incident"`
	Unit     taxonomy.Unit   `json:"unit"`
}

// Create handles POST /api/v1/incidents.
func (h *IncidentHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Processing incident entry", map[string]interface{}{
			"tehsil_code":      req.TehsilCode,
			"disaster_type_id": req.DisasterTypeID,
			"month":            req.Month,
			"year":             req.Year,
		})
	}

	incident, err := h.service.Create(c.Request.Context(), user, services.CreateIncidentInput{
		DisasterSubtypeID: req.DisasterSubtypeID,
		DamageTypeID:      req.DamageTypeID,
		DamageSubtypeID:   req.DamageSubtypeID,
		CampName:          req.CampName,
		DamageQuantity:    req.DamageQuantity,
		TehsilCode:        req.TehsilCode,
		DisasterTypeID:    req.DisasterTypeID,
		Month:             req.Month,
		Year:              req.Year,
		CampCount:         req.CampCount,
		ShelteredCount:    req.ShelteredCount,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to record incident")
		return
	}

	c.JSON(http.StatusCreated, IncidentResponse{
		Incident: incident,
		Unit:     h.service.QuantityUnit(incident.DamageType(), incident.DamageSubtype()),
	})
}
