package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

// PostgresRepository stores one row per extraction run. The canonical
// incident sequence is kept as jsonb so the full report can be replayed
// without re-parsing the source page.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SaveReport(ctx context.Context, report domain.Report) error {
	incidents, err := json.Marshal(report.Incidents)
	if err != nil {
		return fmt.Errorf("failed to marshal incidents: %w", err)
	}
	scheduled, err := json.Marshal(report.Scheduled)
	if err != nil {
		return fmt.Errorf("failed to marshal scheduled entries: %w", err)
	}

	query := `
		INSERT INTO reports (vendor, display_name, generated_at, banner, component_lines, incident_lines, incidents, scheduled, overall_ok)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.Exec(ctx, query,
		report.Vendor,
		report.DisplayName,
		report.GeneratedAt,
		report.Banner,
		report.ComponentLines,
		report.IncidentLines,
		incidents,
		scheduled,
		report.OverallOK,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report for %s: %w", report.Vendor, err)
	}

	return nil
}

func (r *PostgresRepository) FindSince(ctx context.Context, since time.Time, limit int) ([]domain.Report, error) {
	query := `
		SELECT vendor, display_name, generated_at, banner, component_lines, incident_lines, incidents, scheduled, overall_ok
		FROM reports
		WHERE generated_at >= $1
		ORDER BY generated_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports since %v: %w", since, err)
	}
	defer rows.Close()

	return scanReports(rows)
}

func (r *PostgresRepository) LatestPerVendor(ctx context.Context) ([]domain.Report, error) {
	query := `
		SELECT DISTINCT ON (vendor)
			vendor, display_name, generated_at, banner, component_lines, incident_lines, incidents, scheduled, overall_ok
		FROM reports
		ORDER BY vendor, generated_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

type reportRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanReports(rows reportRows) ([]domain.Report, error) {
	var reports []domain.Report

	for rows.Next() {
		var (
			report    domain.Report
			incidents []byte
			scheduled []byte
		)
		err := rows.Scan(
			&report.Vendor,
			&report.DisplayName,
			&report.GeneratedAt,
			&report.Banner,
			&report.ComponentLines,
			&report.IncidentLines,
			&incidents,
			&scheduled,
			&report.OverallOK,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		if len(incidents) > 0 {
			if err := json.Unmarshal(incidents, &report.Incidents); err != nil {
				return nil, fmt.Errorf("failed to decode incidents for %s: %w", report.Vendor, err)
			}
		}
		if len(scheduled) > 0 {
			if err := json.Unmarshal(scheduled, &report.Scheduled); err != nil {
				return nil, fmt.Errorf("failed to decode scheduled entries for %s: %w", report.Vendor, err)
			}
		}

		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reports, nil
}
