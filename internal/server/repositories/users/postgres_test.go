package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userColumns() []string {
	return []string{"id", "name", "password_hash", "role", "is_active", "created_at"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*password_hash,\s*role,\s*is_active\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at\s*$`

	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("u-1", created)
	mock.ExpectQuery(q).
		WithArgs("Sarthak", "hash", models.RoleImaging, true).
		WillReturnRows(rows)

	u := &models.User{Name: "Sarthak", PasswordHash: "hash", Role: models.RoleImaging, IsActive: true}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("Sarthak", "hash", models.RoleImaging, true).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Name: "Sarthak", PasswordHash: "hash", Role: models.RoleImaging, IsActive: true})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByName_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns()).
		AddRow("u-1", "Sarthak", "hash", models.RoleImaging, true, time.Now())
	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*password_hash,\s*role,\s*is_active,\s*created_at\s+FROM\s+users\s+WHERE\s+name\s*=\s*\$1`).
		WithArgs("Sarthak").
		WillReturnRows(rows)

	got, err := repo.GetByName(context.Background(), "Sarthak")
	if err != nil {
		t.Fatalf("GetByName error: %v", err)
	}
	if got.ID != "u-1" || got.Name != "Sarthak" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByName_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+name\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByName(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestList_ReturnsAllInOrder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns()).
		AddRow("u-1", "Samayank", "h1", models.RoleAdmin, true, time.Now()).
		AddRow("u-2", "Sarthak", "h2", models.RoleImaging, true, time.Now())
	mock.ExpectQuery(`FROM\s+users\s+ORDER\s+BY\s+created_at`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Samayank" || got[1].Name != "Sarthak" {
		t.Fatalf("unexpected users: %+v", got)
	}
}
