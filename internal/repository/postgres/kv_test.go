package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestKVRepo_Get(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedValue string
		expectedFound bool
		expectedError bool
	}{
		{
			name:          "key exists",
			key:           "currentUser",
			mockRows:      sqlmock.NewRows([]string{"value"}).AddRow("ana@example.com"),
			expectedValue: "ana@example.com",
			expectedFound: true,
		},
		{
			name:          "key missing",
			key:           "currentUser",
			mockError:     sql.ErrNoRows,
			expectedFound: false,
		},
		{
			name:          "database error",
			key:           "users",
			mockError:     fmt.Errorf("connection reset"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewKVRepo(db)

			query := "SELECT value FROM kv_entries WHERE key = \\$1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.key).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.key).WillReturnRows(tt.mockRows)
			}

			value, found, err := repo.Get(tt.key)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedFound, found)
				assert.Equal(t, tt.expectedValue, value)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepo_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("tableLibrary_greetings", `[["hola","hello"]]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Set("tableLibrary_greetings", `[["hola","hello"]]`)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	mock.ExpectExec("DELETE FROM kv_entries WHERE key = \\$1").
		WithArgs("currentUser").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete("currentUser")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepo_Keys(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	rows := sqlmock.NewRows([]string{"key"}).
		AddRow("tableLibrary_colors").
		AddRow("tableLibrary_greetings")

	mock.ExpectQuery("SELECT key FROM kv_entries WHERE key LIKE \\$1").
		WithArgs(`tableLibrary\_%`).
		WillReturnRows(rows)

	keys, err := repo.Keys("tableLibrary_")

	assert.NoError(t, err)
	assert.Equal(t, []string{"tableLibrary_colors", "tableLibrary_greetings"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepo_Keys_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	mock.ExpectQuery("SELECT key FROM kv_entries").
		WillReturnError(fmt.Errorf("db error"))

	keys, err := repo.Keys("tableLibrary_")

	assert.Error(t, err)
	assert.Nil(t, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}
