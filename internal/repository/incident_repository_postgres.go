package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/sdma/internal/database"
	"github.com/stwalsh4118/sdma/internal/models"
)

// postgresIncidentRepository stores incidents in the incidents table.
type postgresIncidentRepository struct {
	db *database.Database
}

// NewPostgresIncidentRepository creates an IncidentRepository backed by PostgreSQL.
func NewPostgresIncidentRepository(db *database.Database) IncidentRepository {
	return &postgresIncidentRepository{
		db: db,
	}
}

// List reads every row ordered by id. Reports filter in memory, so the
// whole table is returned.
func (r *postgresIncidentRepository) List(ctx context.Context) ([]models.Incident, error) {
	query := `
		SELECT
			id,
			district_code,
			tehsil_code,
			disaster_type_id,
			disaster_subtype_id,
			damage_type_id,
			damage_subtype_id,
			damage_quantity,
			camp_count,
			camp_name,
			sheltered_count,
			month,
			year,
			is_deleted,
			created_at
		FROM incidents
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]models.Incident, 0)
	for rows.Next() {
		var inc models.Incident
		var month, year int16

		err := rows.Scan(
			&inc.ID,
			&inc.DistrictCode,
			&inc.TehsilCode,
			&inc.DisasterTypeID,
			&inc.DisasterSubtypeID,
			&inc.DamageTypeID,
			&inc.DamageSubtypeID,
			&inc.DamageQuantity,
			&inc.CampCount,
			&inc.CampName,
			&inc.ShelteredCount,
			&month,
			&year,
			&inc.IsDeleted,
			&inc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		inc.Month = int(month)
		inc.Year = int(year)

		incidents = append(incidents, inc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incident rows: %w", err)
	}

	return incidents, nil
}

// Create inserts the incident; the id comes from the serial column.
func (r *postgresIncidentRepository) Create(ctx context.Context, incident models.Incident) (models.Incident, error) {
	query := `
		INSERT INTO incidents (
			district_code,
			tehsil_code,
			disaster_type_id,
			disaster_subtype_id,
			damage_type_id,
			damage_subtype_id,
			damage_quantity,
			camp_count,
			camp_name,
			sheltered_count,
			month,
			year,
			is_deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		incident.DistrictCode,
		incident.TehsilCode,
		incident.DisasterTypeID,
		incident.DisasterSubtypeID,
		incident.DamageTypeID,
		incident.DamageSubtypeID,
		incident.DamageQuantity,
		incident.CampCount,
		incident.CampName,
		incident.ShelteredCount,
		int16(incident.Month),
		int16(incident.Year),
		incident.IsDeleted,
	).Scan(&incident.ID, &incident.CreatedAt)
	if err != nil {
		return models.Incident{}, fmt.Errorf("failed to insert incident (district=%d, tehsil=%d): %w",
			incident.DistrictCode, incident.TehsilCode, err)
	}

	return incident, nil
}
