package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/sdma/internal/errors"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

// ReferenceHandler serves the read-only master data.
type ReferenceHandler struct {
	ref         *taxonomy.Store
	years       []int
	defaultYear int
}

// NewReferenceHandler creates a new ReferenceHandler instance.
func NewReferenceHandler(ref *taxonomy.Store, years []int, defaultYear int) *ReferenceHandler {
	return &ReferenceHandler{
		ref:         ref,
		years:       append([]int(nil), years...),
		defaultYear: defaultYear,
	}
}

// TaxonomyResponse is the classification master data plus the selectable
// reporting years.
type TaxonomyResponse struct {
	DisasterTypes    []models.DisasterType    `json:"disasterTypes"`
	DisasterSubtypes []models.DisasterSubtype `json:"disasterSubtypes"`
	DamageTypes      []models.DamageType      `json:"damageTypes"`
	DamageSubtypes   []models.DamageSubtype   `json:"damageSubtypes"`
	Years            []int                    `json:"years"`
	DefaultYear      int                      `json:"defaultYear"`
}

// Districts handles GET /api/v1/reference/districts.
func (h *ReferenceHandler) Districts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"districts": h.ref.Districts()})
}

// Tehsils handles GET /api/v1/reference/districts/:code/tehsils.
func (h *ReferenceHandler) Tehsils(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid district code", map[string]interface{}{"code": c.Param("code")})
		return
	}
	if _, ok := h.ref.District(code); !ok {
		apierrors.NotFound(c, "District not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tehsils": h.ref.TehsilsOf(code)})
}

// Taxonomy handles GET /api/v1/reference/taxonomy.
func (h *ReferenceHandler) Taxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, TaxonomyResponse{
		DisasterTypes:    h.ref.DisasterTypes(),
		DisasterSubtypes: h.ref.DisasterSubtypes(),
		DamageTypes:      h.ref.DamageTypes(),
		DamageSubtypes:   h.ref.DamageSubtypes(),
		Years:            h.years,
		DefaultYear:      h.defaultYear,
	})
}
