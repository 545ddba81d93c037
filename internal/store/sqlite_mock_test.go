package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests inject driver-level failures that a real SQLite file never
// produces, to verify that I/O errors propagate instead of being masked.

func TestSQLiteStore_SaveDocument_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO shares").
		WillReturnError(assert.AnError)

	s := &SQLiteStore{db: db}
	_, err = s.SaveDocument(context.Background(), "{}")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_GetDocument_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM shares").
		WithArgs("some-id").
		WillReturnError(assert.AnError)

	s := &SQLiteStore{db: db}
	_, err = s.GetDocument(context.Background(), "some-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	assert.NoError(t, mock.ExpectationsWereMet())
}
