package user

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// Repository implements the UserRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new user repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.UserRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateUser creates a new user profile
func (r *Repository) CreateUser(user *types.User) error {
	query := `
		INSERT INTO users (id, role, first_name, last_name, email, phone, specialty, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	specialty := sql.NullString{String: user.Specialty, Valid: user.Specialty != ""}

	_, err := r.db.Exec(query,
		user.ID,
		string(user.Role),
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		specialty,
		user.IsActive,
	)

	if err != nil {
		r.logger.Errorf("Failed to create user: %v", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Infof("Created user %s with role %s", user.ID, user.Role)
	return nil
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(id string) (*types.User, error) {
	query := `
		SELECT id, role, first_name, last_name, email, phone, COALESCE(specialty, ''), is_active, created_at, updated_at
		FROM users
		WHERE id = $1`

	user := &types.User{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Role,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Specialty,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %s", id)
		}
		r.logger.Errorf("Failed to get user %s: %v", id, err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *Repository) GetUserByEmail(email string) (*types.User, error) {
	query := `
		SELECT id, role, first_name, last_name, email, phone, COALESCE(specialty, ''), is_active, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &types.User{}
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Role,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Specialty,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %s", email)
		}
		r.logger.Errorf("Failed to get user by email: %v", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// UpdateUser updates a user profile
func (r *Repository) UpdateUser(id string, updates *types.UserUpdates) error {
	setParts := []string{}
	args := []interface{}{}
	argIndex := 1

	if updates.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", argIndex))
		args = append(args, *updates.FirstName)
		argIndex++
	}

	if updates.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", argIndex))
		args = append(args, *updates.LastName)
		argIndex++
	}

	if updates.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, *updates.Email)
		argIndex++
	}

	if updates.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, *updates.Phone)
		argIndex++
	}

	if updates.Specialty != nil {
		setParts = append(setParts, fmt.Sprintf("specialty = $%d", argIndex))
		args = append(args, *updates.Specialty)
		argIndex++
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no updates provided")
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++

	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setParts, ", "), argIndex)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		r.logger.Errorf("Failed to update user %s: %v", id, err)
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}

// DeactivateUser marks a user as inactive
func (r *Repository) DeactivateUser(id string) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = $1 WHERE id = $2`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		r.logger.Errorf("Failed to deactivate user %s: %v", id, err)
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	r.logger.Infof("Deactivated user %s", id)
	return nil
}

// GetUsers retrieves users based on filters
func (r *Repository) GetUsers(filters *types.UserFilters) ([]*types.User, error) {
	query := `
		SELECT id, role, first_name, last_name, email, phone, COALESCE(specialty, ''), is_active, created_at, updated_at
		FROM users
		WHERE 1=1`

	args := []interface{}{}
	argIndex := 1

	if filters.Role != "" {
		query += fmt.Sprintf(" AND role = $%d", argIndex)
		args = append(args, string(filters.Role))
		argIndex++
	}

	if filters.ActiveOnly {
		query += " AND is_active = TRUE"
	}

	query += " ORDER BY last_name, first_name"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Errorf("Failed to get users: %v", err)
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []*types.User
	for rows.Next() {
		user := &types.User{}
		err := rows.Scan(
			&user.ID,
			&user.Role,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Phone,
			&user.Specialty,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			r.logger.Errorf("Failed to scan user: %v", err)
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
