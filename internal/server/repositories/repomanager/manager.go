// Package repomanager opens the durable store, applies migrations, and hands
// out per-aggregate repositories over a shared connection pool.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/messages"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/notes"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Notes() notes.Repository
	Messages() messages.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
