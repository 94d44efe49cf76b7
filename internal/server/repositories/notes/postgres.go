package notes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/dbx"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return nil, fmt.Errorf("tags encoding error: %w", err)
	}

	query :=
		`INSERT INTO notes (author_id, title, content, phase, tags, is_completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		note.Author.ID, note.Title, note.Content, note.Phase, tags, note.IsCompleted).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// List returns all notes, newest first, with the author resolved.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Note, error) {
	query :=
		`SELECT n.id, n.author_id, u.name, n.title, n.content, n.phase, n.tags, n.is_completed, n.created_at, n.updated_at
		 FROM notes n
		 JOIN users u ON u.id = n.author_id
		 ORDER BY n.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		var tags []byte
		if err := rows.Scan(&note.ID, &note.Author.ID, &note.Author.Name,
			&note.Title, &note.Content, &note.Phase, &tags,
			&note.IsCompleted, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(tags, &note.Tags); err != nil {
			return nil, fmt.Errorf("tags decoding error: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return notes, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM notes WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM notes`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
