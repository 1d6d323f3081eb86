package services

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/report"
	"github.com/stwalsh4118/sdma/internal/repository"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

// Dashboard is the landing page summary for one year.
type Dashboard struct {
	Totals        report.Stats      `json:"totals"`
	Slices        []report.PieSlice `json:"slices"`
	Year          int               `json:"year"`
	DistrictCode  int               `json:"districtCode,omitempty"`
	IncidentCount int               `json:"incidentCount"`
}

// ReportService defines the interface for the read-side views. Every call
// reads a fresh incident snapshot; nothing is cached.
type ReportService interface {
	// Dashboard summarizes a year, scoped to the user's district when the
	// user has one.
	Dashboard(ctx context.Context, user models.User, year int) (Dashboard, error)

	// TehsilReport builds the tehsil-detail report of the user's district.
	// Returns ErrForbidden for users without a district.
	TehsilReport(ctx context.Context, user models.User, filter report.Filter) (report.Report, error)

	// MonitoringReport builds a state-wide report in the given mode.
	MonitoringReport(ctx context.Context, mode report.Mode, filter report.Filter) (report.Report, error)

	// DistrictChart builds the stacked district chart table for a year.
	DistrictChart(ctx context.Context, year int, active report.BucketSet) (report.ChartTable, error)

	// Years lists the selectable reporting years; DefaultYear is preselected.
	Years() []int
	DefaultYear() int
}

type reportService struct {
	repo        repository.IncidentRepository
	ref         *taxonomy.Store
	flattener   *report.Flattener
	years       []int
	defaultYear int
	log         *logger.Logger
}

// NewReportService creates a new instance of ReportService.
func NewReportService(repo repository.IncidentRepository, ref *taxonomy.Store, years []int, defaultYear int, log *logger.Logger) ReportService {
	return &reportService{
		repo:        repo,
		ref:         ref,
		flattener:   report.NewFlattener(ref),
		years:       append([]int(nil), years...),
		defaultYear: defaultYear,
		log:         log.Component("report-service"),
	}
}

func (s *reportService) Years() []int {
	return append([]int(nil), s.years...)
}

func (s *reportService) DefaultYear() int {
	return s.defaultYear
}

func (s *reportService) checkFilter(filter report.Filter) error {
	if !containsYear(s.years, filter.Year) {
		return fmt.Errorf("%w: year %d is not a reporting year", ErrInvalidFilter, filter.Year)
	}
	if filter.Month < 0 || filter.Month > 12 {
		return fmt.Errorf("%w: month must be all or 1-12, got %d", ErrInvalidFilter, filter.Month)
	}
	if filter.DisasterTypeID < 0 {
		return fmt.Errorf("%w: invalid disaster type %d", ErrInvalidFilter, filter.DisasterTypeID)
	}
	return nil
}

func (s *reportService) incidents(ctx context.Context) ([]models.Incident, error) {
	incidents, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to load incidents", err, nil)
		return nil, fmt.Errorf("failed to load incidents: %w", err)
	}
	return incidents, nil
}

func (s *reportService) Dashboard(ctx context.Context, user models.User, year int) (Dashboard, error) {
	filter := report.Filter{Year: year}
	if err := s.checkFilter(filter); err != nil {
		return Dashboard{}, err
	}

	incidents, err := s.incidents(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	pool := filter.Apply(incidents)
	if district := user.District(); district != 0 {
		scoped := make([]models.Incident, 0, len(pool))
		for _, inc := range pool {
			if inc.DistrictCode == district {
				scoped = append(scoped, inc)
			}
		}
		pool = scoped
	}

	totals := report.Aggregate(pool)
	return Dashboard{
		Year:          year,
		DistrictCode:  user.District(),
		Totals:        totals,
		Slices:        report.PieSlices(totals),
		IncidentCount: len(pool),
	}, nil
}

func (s *reportService) TehsilReport(ctx context.Context, user models.User, filter report.Filter) (report.Report, error) {
	district := user.District()
	if district == 0 {
		return report.Report{}, fmt.Errorf("%w: tehsil report needs a district user", ErrForbidden)
	}
	if err := s.checkFilter(filter); err != nil {
		return report.Report{}, err
	}

	incidents, err := s.incidents(ctx)
	if err != nil {
		return report.Report{}, err
	}

	rep := s.flattener.TehsilDetail(incidents, district, filter)
	s.log.Debug("Tehsil report built", map[string]interface{}{
		"district_code": district,
		"year":          filter.Year,
		"month":         filter.Month,
		"rows":          len(rep.Rows),
	})
	return rep, nil
}

func (s *reportService) MonitoringReport(ctx context.Context, mode report.Mode, filter report.Filter) (report.Report, error) {
	if err := s.checkFilter(filter); err != nil {
		return report.Report{}, err
	}

	incidents, err := s.incidents(ctx)
	if err != nil {
		return report.Report{}, err
	}

	var rep report.Report
	switch mode {
	case report.ModeDistrictDetail:
		rep = s.flattener.DistrictDetail(incidents, filter)
	case report.ModeDistrictSummary:
		rep = s.flattener.DistrictSummary(incidents, filter)
	default:
		return report.Report{}, fmt.Errorf("%w: unsupported report mode %q", ErrInvalidFilter, mode)
	}

	s.log.Debug("Monitoring report built", map[string]interface{}{
		"mode":  string(mode),
		"year":  filter.Year,
		"month": filter.Month,
		"rows":  len(rep.Rows),
	})
	return rep, nil
}

func (s *reportService) DistrictChart(ctx context.Context, year int, active report.BucketSet) (report.ChartTable, error) {
	if err := s.checkFilter(report.Filter{Year: year}); err != nil {
		return report.ChartTable{}, err
	}

	incidents, err := s.incidents(ctx)
	if err != nil {
		return report.ChartTable{}, err
	}

	return report.DistrictChart(incidents, year, active, s.ref), nil
}
