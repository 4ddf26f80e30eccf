package services

import (
	"context"

	"go.uber.org/zap"

	"tea-backend/internal/logger"
	"tea-backend/internal/metrics"
	"tea-backend/internal/models"
	"tea-backend/internal/repositories"
)

// VerifyService counts rows per entity table after a run.
type VerifyService struct {
	DB repositories.Database
}

func NewVerifyService(db repositories.Database) *VerifyService {
	return &VerifyService{DB: db}
}

// Verify counts every entity table. A table that cannot be counted is logged
// and reported with Count -1; it never fails the pass.
func (v *VerifyService) Verify(ctx context.Context) []models.TableCount {
	counts := make([]models.TableCount, 0, len(models.LoadOrder))
	for _, kind := range models.LoadOrder {
		table := kind.Table()
		tc := models.TableCount{Entity: kind, Table: table}

		n, err := v.DB.Count(ctx, table)
		if err != nil {
			logger.Error("failed to count table",
				zap.String("entity", string(kind)),
				zap.String("table", table),
				zap.Error(err))
			tc.Count = -1
			tc.Error = err.Error()
		} else {
			logger.Info("table count",
				zap.String("entity", string(kind)),
				zap.String("table", table),
				zap.Int64("count", n))
			tc.Count = n
			metrics.TableRows.WithLabelValues(table).Set(float64(n))
		}
		counts = append(counts, tc)
	}
	return counts
}
