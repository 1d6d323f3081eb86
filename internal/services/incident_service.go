package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stwalsh4118/sdma/internal/access"
	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/metrics"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/repository"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

// CreateIncidentInput is the incident entry form. The district always comes
// from the signed-in user.
type CreateIncidentInput struct {
	DisasterSubtypeID *int
	DamageTypeID      *int
	DamageSubtypeID   *int
	CampName          string
	DamageQuantity    float64
	TehsilCode        int
	DisasterTypeID    int
	Month             int
	Year              int
	CampCount         int
	ShelteredCount    int
}

// IncidentService defines the interface for incident entry.
type IncidentService interface {
	// Create validates and stores an incident for the user's district.
	// Returns ErrForbidden for users who may not enter incidents.
	// Returns ErrInvalidIncident when the entry fails validation.
	Create(ctx context.Context, user models.User, in CreateIncidentInput) (models.Incident, error)

	// QuantityUnit returns the unit damage quantity is recorded in.
	QuantityUnit(damageTypeID, damageSubtypeID int) taxonomy.Unit
}

type incidentService struct {
	repo  repository.IncidentRepository
	ref   *taxonomy.Store
	years []int
	log   *logger.Logger
}

// NewIncidentService creates a new instance of IncidentService. years are
// the reporting years an incident may be filed under.
func NewIncidentService(repo repository.IncidentRepository, ref *taxonomy.Store, years []int, log *logger.Logger) IncidentService {
	return &incidentService{
		repo:  repo,
		ref:   ref,
		years: years,
		log:   log.Component("incident-service"),
	}
}

func (s *incidentService) Create(ctx context.Context, user models.User, in CreateIncidentInput) (models.Incident, error) {
	if !access.CanView(user.Role, access.FeatureIncidentEntry) || user.DistrictCode == nil {
		s.log.Warn("Incident entry refused", map[string]interface{}{
			"user_id": user.UserID,
			"role":    user.Role.String(),
		})
		return models.Incident{}, fmt.Errorf("%w: only district users can enter incidents", ErrForbidden)
	}

	incident := models.Incident{
		DistrictCode:      user.District(),
		TehsilCode:        in.TehsilCode,
		DisasterTypeID:    in.DisasterTypeID,
		DisasterSubtypeID: in.DisasterSubtypeID,
		DamageTypeID:      in.DamageTypeID,
		DamageSubtypeID:   in.DamageSubtypeID,
		DamageQuantity:    in.DamageQuantity,
		Month:             in.Month,
		Year:              in.Year,
	}
	if incident.IsFlood() {
		incident.CampName = strings.TrimSpace(in.CampName)
		incident.CampCount = in.CampCount
		incident.ShelteredCount = in.ShelteredCount
	}

	if err := s.validate(incident); err != nil {
		s.log.Warn("Incident rejected", map[string]interface{}{
			"user_id":       user.UserID,
			"district_code": incident.DistrictCode,
			"reason":        err.Error(),
		})
		return models.Incident{}, err
	}

	created, err := s.repo.Create(ctx, incident)
	if err != nil {
		s.log.Error("Failed to store incident", err, map[string]interface{}{
			"district_code": incident.DistrictCode,
			"tehsil_code":   incident.TehsilCode,
		})
		return models.Incident{}, fmt.Errorf("failed to store incident: %w", err)
	}

	metrics.IncidentsRecordedTotal.WithLabelValues(strconv.Itoa(created.DisasterTypeID)).Inc()
	s.log.Info("Incident recorded", map[string]interface{}{
		"incident_id":      created.ID,
		"district_code":    created.DistrictCode,
		"tehsil_code":      created.TehsilCode,
		"disaster_type_id": created.DisasterTypeID,
		"user_id":          user.UserID,
	})

	return created, nil
}

func (s *incidentService) validate(inc models.Incident) error {
	if _, ok := s.ref.District(inc.DistrictCode); !ok {
		return fmt.Errorf("%w: unknown district %d", ErrInvalidIncident, inc.DistrictCode)
	}
	if inc.TehsilCode == 0 {
		return fmt.Errorf("%w: tehsil is required", ErrInvalidIncident)
	}
	if !s.ref.TehsilBelongsTo(inc.TehsilCode, inc.DistrictCode) {
		return fmt.Errorf("%w: tehsil %d is not in district %d", ErrInvalidIncident, inc.TehsilCode, inc.DistrictCode)
	}

	if inc.DisasterTypeID == 0 {
		return fmt.Errorf("%w: disaster type is required", ErrInvalidIncident)
	}
	if _, ok := s.ref.DisasterType(inc.DisasterTypeID); !ok {
		return fmt.Errorf("%w: unknown disaster type %d", ErrInvalidIncident, inc.DisasterTypeID)
	}
	if inc.DisasterSubtypeID != nil && !s.ref.DisasterSubtypeBelongsTo(*inc.DisasterSubtypeID, inc.DisasterTypeID) {
		return fmt.Errorf("%w: disaster subtype %d is not a subtype of %d",
			ErrInvalidIncident, *inc.DisasterSubtypeID, inc.DisasterTypeID)
	}

	if inc.DamageTypeID != nil {
		if _, ok := s.ref.DamageType(*inc.DamageTypeID); !ok {
			return fmt.Errorf("%w: unknown damage type %d", ErrInvalidIncident, *inc.DamageTypeID)
		}
	}
	if inc.DamageSubtypeID != nil {
		if inc.DamageTypeID == nil {
			return fmt.Errorf("%w: damage subtype requires a damage type", ErrInvalidIncident)
		}
		if !s.ref.DamageSubtypeBelongsTo(*inc.DamageSubtypeID, *inc.DamageTypeID) {
			return fmt.Errorf("%w: damage subtype %d is not a subtype of %d",
				ErrInvalidIncident, *inc.DamageSubtypeID, *inc.DamageTypeID)
		}
	}

	if math.IsNaN(inc.DamageQuantity) || math.IsInf(inc.DamageQuantity, 0) || inc.DamageQuantity < 0 {
		return fmt.Errorf("%w: damage quantity must be zero or more", ErrInvalidIncident)
	}
	if inc.Month < 1 || inc.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidIncident, inc.Month)
	}
	if !containsYear(s.years, inc.Year) {
		return fmt.Errorf("%w: year %d is not an open reporting year", ErrInvalidIncident, inc.Year)
	}
	if inc.CampCount < 0 || inc.ShelteredCount < 0 {
		return fmt.Errorf("%w: camp counts must be zero or more", ErrInvalidIncident)
	}

	return nil
}

func (s *incidentService) QuantityUnit(damageTypeID, damageSubtypeID int) taxonomy.Unit {
	return s.ref.QuantityUnit(damageTypeID, damageSubtypeID)
}

func containsYear(years []int, year int) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}
