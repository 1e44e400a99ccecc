package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
	"github.com/cloudnative-labs/microservices/internal/core/domain/user"
	"github.com/cloudnative-labs/microservices/internal/core/ports"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/db"
)

const userColumns = `id, name, email, created_at`

// UserRepository implements the user repository interface
type UserRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.Database, logger *logrus.Logger) ports.UserRepository {
	return &UserRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts a user and returns the stored row. A duplicate email is a conflict.
func (r *UserRepository) Create(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	var u user.User
	query := `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING ` + userColumns

	if err := r.db.DB.GetContext(ctx, &u, query, req.Name, req.Email); err != nil {
		if isUniqueViolation(err) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"email": req.Email}).Debug("db: duplicate user email")
			}
			return nil, apperrors.Conflict("this email is already in use", err)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": req.Email}).WithError(err).Error("db: failed to create user")
		}
		return nil, apperrors.Dependency("failed to create user", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("db: user created")
	}

	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	if err := r.db.DB.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"user_id": id}).Debug("db: user not found by ID")
			}
			return nil, apperrors.NotFound(fmt.Sprintf("user with ID %d not found", id))
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": id}).WithError(err).Error("db: failed to get user by ID")
		}
		return nil, apperrors.Dependency("failed to get user", err)
	}

	return &u, nil
}

// Delete removes a user and returns the deleted row.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	if err := r.db.DB.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"user_id": id}).Debug("db: delete matched 0 rows - user not found")
			}
			return nil, apperrors.NotFound(fmt.Sprintf("user with ID %d not found", id))
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": id}).WithError(err).Error("db: failed to delete user")
		}
		return nil, apperrors.Dependency("failed to delete user", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": id}).Info("db: user deleted")
	}

	return &u, nil
}

// ListAll retrieves every user ordered by ascending id.
func (r *UserRepository) ListAll(ctx context.Context) ([]*user.User, error) {
	users := []*user.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`

	if err := r.db.DB.SelectContext(ctx, &users, query); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to list users")
		}
		return nil, apperrors.Dependency("failed to list users", err)
	}

	return users, nil
}
