package ports

import (
	"context"
	"time"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

type ReportRepository interface {
	SaveReport(ctx context.Context, report domain.Report) error
	FindSince(ctx context.Context, since time.Time, limit int) ([]domain.Report, error)
	LatestPerVendor(ctx context.Context) ([]domain.Report, error)
}
