// Package access holds the role capability matrix of the dashboard.
package access

import "github.com/stwalsh4118/sdma/internal/models"

// Feature is a screen or API area gated by role.
type Feature string

const (
	FeatureDashboard          Feature = "dashboard"
	FeatureIncidentEntry      Feature = "incident-entry"
	FeatureTehsilReport       Feature = "tehsil-report"
	FeatureMonitoringReport   Feature = "monitoring-report"
	FeatureDistrictChart      Feature = "district-damage-chart"
	FeatureIncidentCategories Feature = "incident-categories"
	FeatureUserManagement     Feature = "user-management"
	FeatureProfile            Feature = "profile"
	FeatureChangePassword     Feature = "change-password"
)

// Features lists every feature in menu order.
var Features = []Feature{
	FeatureDashboard,
	FeatureIncidentEntry,
	FeatureTehsilReport,
	FeatureMonitoringReport,
	FeatureDistrictChart,
	FeatureIncidentCategories,
	FeatureUserManagement,
	FeatureProfile,
	FeatureChangePassword,
}

var (
	everyone       = []models.Role{models.RoleAdmin, models.RoleState, models.RoleDistrict}
	districtOnly   = []models.Role{models.RoleDistrict}
	stateAndAdmins = []models.Role{models.RoleAdmin, models.RoleState}
)

var matrix = map[Feature][]models.Role{
	FeatureDashboard:          everyone,
	FeatureIncidentEntry:      districtOnly,
	FeatureTehsilReport:       districtOnly,
	FeatureMonitoringReport:   stateAndAdmins,
	FeatureDistrictChart:      stateAndAdmins,
	FeatureIncidentCategories: stateAndAdmins,
	FeatureUserManagement:     stateAndAdmins,
	FeatureProfile:            everyone,
	FeatureChangePassword:     everyone,
}

// CanView reports whether the role may use the feature. Unknown roles and
// unknown features are denied.
func CanView(role models.Role, feature Feature) bool {
	for _, r := range matrix[feature] {
		if r == role {
			return true
		}
	}
	return false
}

// Menu returns the features visible to a role, in menu order.
func Menu(role models.Role) []Feature {
	visible := make([]Feature, 0, len(Features))
	for _, f := range Features {
		if CanView(role, f) {
			visible = append(visible, f)
		}
	}
	return visible
}
