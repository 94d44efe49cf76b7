package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Samayank/Renal-Tumor-Detection/internal/server/migrations"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/messages"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/notes"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	users    users.Repository
	notes    notes.Repository
	messages messages.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Notes() notes.Repository {
	return m.notes
}

func (m *PostgresRepositoryManager) Messages() messages.Repository {
	return m.messages
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:       db,
		users:    users.NewPostgresRepository(db),
		notes:    notes.NewPostgresRepository(db),
		messages: messages.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
