package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dsmirnovs/notekeeper/internal/common"
	"github.com/dsmirnovs/notekeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strptr(s string) *string { return &s }

func noteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "content", "category", "user_id", "created_at", "updated_at"})
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := `(?s)^\s*INSERT\s+INTO\s+notes\s*\(title,\s*content,\s*category,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("n-1", now, now)
	mock.ExpectQuery(q).
		WithArgs("Grocery List", "milk, eggs", nil, "u-1").
		WillReturnRows(rows)

	note := &models.Note{Title: "Grocery List", Content: "milk, eggs", UserID: "u-1"}
	got, err := repo.Create(context.Background(), note)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "n-1" || !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestGet_OwnerPredicateInQuery(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`
	mock.ExpectQuery(q).
		WithArgs("n-1", "u-1").
		WillReturnRows(noteRows().AddRow("n-1", "t", "c", nil, "u-1", time.Now(), time.Now()))

	got, err := repo.Get(context.Background(), "u-1", "n-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != "n-1" || got.Category != nil {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestGet_OtherOwnerLooksMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("n-1", "u-2").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u-2", "n-1")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestUpdate_SetsOnlyPatchedFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+notes\s+SET\s+updated_at\s*=\s*now\(\),\s*category\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2\s+AND\s+user_id\s*=\s*\$3\s+RETURNING`
	mock.ExpectQuery(q).
		WithArgs("work", "n-1", "u-1").
		WillReturnRows(noteRows().AddRow("n-1", "t", "c", "work", "u-1", time.Now(), time.Now()))

	got, err := repo.Update(context.Background(), "u-1", "n-1", models.NotePatch{Category: strptr("work")})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Category == nil || *got.Category != "work" {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestUpdate_AllFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SET\s+updated_at\s*=\s*now\(\),\s*title\s*=\s*\$1,\s*content\s*=\s*\$2,\s*category\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$4\s+AND\s+user_id\s*=\s*\$5`
	mock.ExpectQuery(q).
		WithArgs("t2", "c2", "cat2", "n-1", "u-1").
		WillReturnRows(noteRows().AddRow("n-1", "t2", "c2", "cat2", "u-1", time.Now(), time.Now()))

	patch := models.NotePatch{Title: strptr("t2"), Content: strptr("c2"), Category: strptr("cat2")}
	if _, err := repo.Update(context.Background(), "u-1", "n-1", patch); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "u-1", "missing", models.NotePatch{Title: strptr("x")})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`
	mock.ExpectExec(q).WithArgs("n-1", "u-1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u-1", "n-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE`).WithArgs("n-1", "u-2").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u-2", "n-1")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestList_DefaultQueryShape(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	countQ := `(?s)^SELECT\s+count\(\*\)\s+FROM\s+notes\s+WHERE\s+user_id\s*=\s*\$1$`
	mock.ExpectQuery(countQ).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	selectQ := `(?s)WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+updated_at\s+DESC\s+LIMIT\s+\$2\s+OFFSET\s+\$3`
	mock.ExpectQuery(selectQ).WithArgs("u-1", 10, 0).
		WillReturnRows(noteRows().
			AddRow("n-2", "b", "", nil, "u-1", time.Now(), time.Now()).
			AddRow("n-1", "a", "", nil, "u-1", time.Now(), time.Now()))

	items, total, err := repo.List(context.Background(), "u-1", ListQuery{SortBy: "updated_at", Desc: true, Limit: 10, Offset: 0})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 2 || len(items) != 2 || items[0].ID != "n-2" {
		t.Fatalf("unexpected result: total=%d items=%+v", total, items)
	}
}

func TestList_SearchAndCategoryFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	countQ := `(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+\(title\s+ILIKE\s+\$2\s+OR\s+content\s+ILIKE\s+\$2\)\s+AND\s+category\s*=\s*\$3`
	mock.ExpectQuery(countQ).WithArgs("u-1", "%grocery%", "home").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	selectQ := `(?s)AND\s+\(title\s+ILIKE\s+\$2\s+OR\s+content\s+ILIKE\s+\$2\)\s+AND\s+category\s*=\s*\$3\s+ORDER\s+BY\s+title\s+ASC\s+LIMIT\s+\$4\s+OFFSET\s+\$5`
	mock.ExpectQuery(selectQ).WithArgs("u-1", "%grocery%", "home", 10, 0).
		WillReturnRows(noteRows().AddRow("n-1", "Grocery List", "", "home", "u-1", time.Now(), time.Now()))

	q := ListQuery{Search: "grocery", Category: "home", SortBy: "title", Desc: false, Limit: 10, Offset: 0}
	items, total, err := repo.List(context.Background(), "u-1", q)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Title != "Grocery List" {
		t.Fatalf("unexpected result: total=%d items=%+v", total, items)
	}
}

// An unknown sort key must never reach the SQL text.
func TestList_UnknownSortFallsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`count`).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`(?s)ORDER\s+BY\s+updated_at\s+DESC`).WithArgs("u-1", 10, 0).
		WillReturnRows(noteRows())

	q := ListQuery{SortBy: "password_hash", Desc: true, Limit: 10, Offset: 0}
	if _, _, err := repo.List(context.Background(), "u-1", q); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
