// Package analytics computes the derived financial figures of a user:
// the dashboard, period analytics, category details and goal progress.
package analytics

import (
	"context"
	"database/sql"

	"github.com/easyfinances/backend/internal/models"
	"gorm.io/gorm"
)

// Engine runs aggregations on the ledger.
type Engine struct {
	db *gorm.DB
}

func New(db *gorm.DB) Engine {
	return Engine{db: db}
}

// snapshot runs fc in one read transaction so that all figures of an
// aggregation come from the same state of the ledger.
//
// SQLite transactions are serializable already and the driver does not
// take isolation options.
func (e Engine) snapshot(ctx context.Context, fc func(tx *gorm.DB) error) error {
	db := e.db.WithContext(ctx)

	if db.Dialector.Name() == "postgres" {
		return models.RunInTransaction(db, fc, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}

	return models.RunInTransaction(db, fc)
}
