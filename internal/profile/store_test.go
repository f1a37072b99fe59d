// internal/profile/store_test.go
package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"scholarship-workers/internal/common/database"
	"scholarship-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *models.StudentProfile {
	now := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	return &models.StudentProfile{
		UID:         "u1",
		Email:       "asha@example.in",
		FullName:    "Asha Kumari",
		State:       "Bihar",
		Country:     "India",
		Gender:      models.GenderFemale,
		Parents:     &models.ParentDetails{FatherName: "Ram", MotherName: "Sita", Category: models.CategorySC},
		CurrentStep: 3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ==========================
// RedisStore
// ==========================

func TestRedisStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewRedisStore(rdb)
	ctx := context.Background()

	p, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, store.Save(ctx, sampleProfile()))
	assert.True(t, mr.Exists("student_profile_u1"))

	p, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumari", p.FullName)
	assert.Equal(t, models.CategorySC, p.Category())

	require.NoError(t, store.Clear(ctx, "u1"))
	assert.False(t, mr.Exists("student_profile_u1"))
}

func TestRedisStore_SaveWithTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewRedisStore(rdb)
	require.NoError(t, store.SaveWithTTL(context.Background(), sampleProfile(), time.Hour))

	assert.Equal(t, time.Hour, mr.TTL("student_profile_u1"))
}

func TestRedisStore_Errors(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb)
	ctx := context.Background()

	mock.ExpectGet("student_profile_u1").SetErr(errors.New("connection reset"))
	_, err := store.Load(ctx, "u1")
	assert.ErrorContains(t, err, "connection reset")

	mock.ExpectGet("student_profile_u2").SetVal("{not json")
	_, err = store.Load(ctx, "u2")
	assert.ErrorContains(t, err, "decode profile u2")

	mock.ExpectDel("student_profile_u3").SetErr(errors.New("readonly"))
	assert.Error(t, store.Clear(ctx, "u3"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// SQLiteStore
// ==========================

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLiteStore(ctx, db)
	require.NoError(t, err)

	// second migration is a no-op
	_, err = NewSQLiteStore(ctx, db)
	require.NoError(t, err)

	p, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p)

	in := sampleProfile()
	require.NoError(t, store.Save(ctx, in))

	in.CurrentStep = 4
	in.City = "Gaya"
	require.NoError(t, store.Save(ctx, in))

	p, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.CurrentStep)
	assert.Equal(t, "Gaya", p.City)

	require.NoError(t, store.Clear(ctx, "u1"))
	p, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

// ==========================
// PostgresMirror
// ==========================

func TestPostgresMirror_Mirror(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewPostgresMirror(db)
	p := sampleProfile()

	mock.ExpectExec("INSERT INTO student_profiles").
		WithArgs("u1", "asha@example.in", "Bihar", 3, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, m.Mirror(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMirror_Fetch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewPostgresMirror(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT data FROM student_profiles").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"uid":"u1","fullName":"Asha Kumari","currentStep":2}`)))

	p, err := m.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumari", p.FullName)
	assert.Equal(t, 2, p.CurrentStep)

	mock.ExpectQuery("SELECT data FROM student_profiles").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	p, err = m.Fetch(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, p)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMirror_SchemaAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewPostgresMirror(db)
	ctx := context.Background()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS student_profiles").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM student_profiles").WithArgs("u1").WillReturnError(errors.New("timeout"))

	require.NoError(t, m.EnsureSchema(ctx))
	assert.ErrorContains(t, m.Delete(ctx, "u1"), "delete profile u1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
