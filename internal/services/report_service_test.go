package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/report"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

func newReportService(repo *MockIncidentRepository) ReportService {
	return NewReportService(repo, testStore(), testYears, 2024, logger.Nop())
}

func TestDashboard_StateUserSeesEveryDistrict(t *testing.T) {
	mockRepo := new(MockIncidentRepository)
	service := newReportService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(taxonomy.SampleIncidents(), nil)

	dash, err := service.Dashboard(ctx, models.User{UserID: "state", Role: models.RoleState}, 2024)

	require.NoError(t, err)
	assert.Equal(t, 2024, dash.Year)
	assert.Zero(t, dash.DistrictCode)
	assert.Equal(t, 10, dash.IncidentCount)
	assert.Equal(t, 4.0, dash.Totals.LossOfLife)
	assert.Equal(t, 15.0, dash.Totals.HouseDamage)
	assert.Equal(t, 155.5, dash.Totals.CropDamage)
	assert.Equal(t, 2.0, dash.Totals.GovtAssetLoss)
	assert.Equal(t, 4.2, dash.Totals.RoadDamage)
	assert.Len(t, dash.Slices, 6)
	mockRepo.AssertExpectations(t)
}

func TestDashboard_DistrictUserIsScoped(t *testing.T) {
	mockRepo := new(MockIncidentRepository)
	service := newReportService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(taxonomy.SampleIncidents(), nil)

	dash, err := service.Dashboard(ctx, districtUser(21), 2024)

	require.NoError(t, err)
	assert.Equal(t, 21, dash.DistrictCode)
	assert.Equal(t, 5, dash.IncidentCount)
	assert.Equal(t, 3.0, dash.Totals.LossOfLife)
	assert.Zero(t, dash.Totals.AnimalLoss)
	assert.Zero(t, dash.Totals.GovtAssetLoss)
	for _, s := range dash.Slices {
		assert.Positive(t, s.Value)
	}
}

func TestDashboard_RejectsUnknownYear(t *testing.T) {
	mockRepo := new(MockIncidentRepository)
	service := newReportService(mockRepo)

	_, err := service.Dashboard(context.Background(), districtUser(21), 1999)

	assert.ErrorIs(t, err, ErrInvalidFilter)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestTehsilReport_RequiresDistrict(t *testing.T) {
	mockRepo := new(MockIncidentRepository)
	service := newReportService(mockRepo)

	_, err := service.TehsilReport(context.Background(), models.User{Role: models.RoleState}, report.Filter{Year: 2024})

	assert.ErrorIs(t, err, ErrForbidden)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestTehsilReport_Success(t *testing.T) {
	mockRepo := new(MockIncidentRepository)
	service := newReportService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(taxonomy.SampleIncidents(), nil)

	rep, err := service.TehsilReport(ctx, districtUser(21), report.Filter{Year: 2024, Month: 7})

	require.NoError(t, err)
	assert.Equal(t, report.ModeTehsilDetail, rep.Mode)
	assert.Equal(t, 21, rep.DistrictCode)
	assert.NotEmpty(t, rep.Rows)
	assert.Equal(t, 2.0, rep.Totals.LossOfLife)
	assert.Equal(t, 12.0, rep.Totals.HouseDamage)
	mockRepo.AssertExpectations(t)
}

func TestMonitoringReport_Modes(t *testing.T) {
	mockRepo := new(MockIncidentRepository)
	service := newReportService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(taxonomy.SampleIncidents(), nil)

	detailed, err := service.MonitoringReport(ctx, report.ModeDistrictDetail, report.Filter{Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, report.ModeDistrictDetail, detailed.Mode)

	summary, err := service.MonitoringReport(ctx, report.ModeDistrictSummary, report.Filter{Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, report.ModeDistrictSummary, summary.Mode)
	assert.Len(t, summary.Rows, 6)

	assert.Equal(t, detailed.Totals, summary.Totals)
}

func TestMonitoringReport_InvalidFilter(t *testing.T) {
	tests := []struct {
		name   string
		mode   report.Mode
		filter report.Filter
	}{
		{"tehsil mode", report.ModeTehsilDetail, report.Filter{Year: 2024}},
		{"unknown mode", report.Mode("weekly"), report.Filter{Year: 2024}},
		{"month out of range", report.ModeDistrictDetail, report.Filter{Year: 2024, Month: 13}},
		{"negative disaster type", report.ModeDistrictSummary, report.Filter{Year: 2024, DisasterTypeID: -1}},
		{"closed year", report.ModeDistrictSummary, report.Filter{Year: 2010}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockIncidentRepository)
			mockRepo.On("List", mock.Anything).Return([]models.Incident{}, nil).Maybe()
			service := newReportService(mockRepo)

			_, err := service.MonitoringReport(context.Background(), tt.mode, tt.filter)

			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func TestDistrictChart(t *testing.T) {
	mockRepo := new(MockIncidentRepository)
	service := newReportService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(taxonomy.SampleIncidents(), nil)

	chart, err := service.DistrictChart(ctx, 2024, report.BucketSet{report.CropDamage: true})

	require.NoError(t, err)
	assert.Equal(t, []string{report.DistrictColumnLabel, report.CropDamage.Label()}, chart.Header)
	assert.Len(t, chart.Rows, 2)
	assert.False(t, chart.Empty)
}

func TestReportService_RepositoryError(t *testing.T) {
	mockRepo := new(MockIncidentRepository)
	service := newReportService(mockRepo)
	ctx := context.Background()

	dbErr := errors.New("pool closed")
	mockRepo.On("List", ctx).Return(nil, dbErr)

	_, err := service.Dashboard(ctx, districtUser(21), 2024)
	assert.ErrorIs(t, err, dbErr)

	_, err = service.MonitoringReport(ctx, report.ModeDistrictSummary, report.Filter{Year: 2024})
	assert.ErrorIs(t, err, dbErr)
}

func TestYears(t *testing.T) {
	service := newReportService(new(MockIncidentRepository))

	years := service.Years()
	years[0] = 1900

	assert.Equal(t, testYears, service.Years())
	assert.Equal(t, 2024, service.DefaultYear())
}
