package sqlite

import (
	"log/slog"
	"time"

	"github.com/techcare/core/internal/db"
	"github.com/techcare/core/pkg/models"
	"github.com/techcare/core/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.RequestRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

// now returns the current local time formatted for request_date and
// completion_date columns.
func now() string {
	return time.Now().Format(models.TimestampLayout)
}
