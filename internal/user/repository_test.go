package user

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := &Repository{
		db:     &database.DB{DB: db},
		logger: logger.New("debug"),
	}

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestRepository_CreateUser(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	user := &types.User{
		ID:        uuid.New().String(),
		Role:      types.RoleDoctor,
		FirstName: "Gregory",
		LastName:  "House",
		Email:     "house@example.com",
		Specialty: "Diagnostics",
		IsActive:  true,
	}

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateUser(user)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetUserByID(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "role", "first_name", "last_name", "email", "phone", "specialty", "is_active", "created_at", "updated_at"}).
		AddRow("user-1", "patient", "Jane", "Doe", "jane@example.com", "555-0100", "", true, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("user-1").
		WillReturnRows(rows)

	user, err := repo.GetUserByID("user-1")

	assert.NoError(t, err)
	assert.Equal(t, types.RolePatient, user.Role)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestRepository_GetUserByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.GetUserByID("missing")

	assert.Error(t, err)
	assert.Nil(t, user)
}

func TestRepository_UpdateUser_PartialUpdate(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	phone := "555-0199"
	err := repo.UpdateUser("user-1", &types.UserUpdates{Phone: &phone})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateUser_NoFields(t *testing.T) {
	repo, _, cleanup := setupTestRepository(t)
	defer cleanup()

	err := repo.UpdateUser("user-1", &types.UserUpdates{})

	assert.Error(t, err)
}

func TestRepository_DeactivateUser(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE users SET is_active").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeactivateUser("user-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
