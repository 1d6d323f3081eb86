package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stwalsh4118/sdma/internal/models"
)

func TestCanView_Matrix(t *testing.T) {
	tests := []struct {
		feature  Feature
		admin    bool
		state    bool
		district bool
	}{
		{FeatureDashboard, true, true, true},
		{FeatureIncidentEntry, false, false, true},
		{FeatureTehsilReport, false, false, true},
		{FeatureMonitoringReport, true, true, false},
		{FeatureDistrictChart, true, true, false},
		{FeatureIncidentCategories, true, true, false},
		{FeatureUserManagement, true, true, false},
		{FeatureProfile, true, true, true},
		{FeatureChangePassword, true, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.feature), func(t *testing.T) {
			assert.Equal(t, tt.admin, CanView(models.RoleAdmin, tt.feature), "admin")
			assert.Equal(t, tt.state, CanView(models.RoleState, tt.feature), "state")
			assert.Equal(t, tt.district, CanView(models.RoleDistrict, tt.feature), "district")
		})
	}
}

func TestCanView_DeniesUnknown(t *testing.T) {
	assert.False(t, CanView(models.Role(42), FeatureDashboard))
	assert.False(t, CanView(models.RoleAdmin, Feature("reports-v2")))
}

func TestMenu(t *testing.T) {
	assert.Equal(t, []Feature{
		FeatureDashboard,
		FeatureIncidentEntry,
		FeatureTehsilReport,
		FeatureProfile,
		FeatureChangePassword,
	}, Menu(models.RoleDistrict))

	assert.Len(t, Menu(models.RoleState), 7)
	assert.Empty(t, Menu(models.Role(0)))
}
