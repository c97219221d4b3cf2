package ledger

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGStore(db), mock
}

func TestPGStore_Load(t *testing.T) {
	s, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"achievements", "total_attempts"}).
		AddRow([]byte(`{"FIVE_PLUS_BONUS":1,"ONE":2}`), 9)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT achievements, total_attempts FROM lotto_ledgers WHERE session_id = $1`)).
		WithArgs("sess-1").
		WillReturnRows(rows)

	got, ok, err := s.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testSnapshot(), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStore_LoadMissing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT achievements").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"achievements", "total_attempts"}))

	_, ok, err := s.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStore_LoadError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT achievements").WillReturnError(errors.New("connection reset"))

	_, _, err := s.Load(context.Background(), "sess-1")
	assert.ErrorContains(t, err, "connection reset")
}

func TestPGStore_Save(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO lotto_ledgers").
		WithArgs("sess-1", sqlmock.AnyArg(), 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Save(context.Background(), "sess-1", testSnapshot()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStore_Delete(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM lotto_ledgers").
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
