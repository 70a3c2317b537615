package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUser(ctx context.Context, user *User) error
	userExistsByLoginOrEmail(ctx context.Context, login, email string) (*User, error)
	getUserByLoginOrEmail(ctx context.Context, loginOrEmail string) (*User, error)
	getUserByID(ctx context.Context, id string) (*User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) createUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, login, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Login, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}
	return nil
}

func (r *userRepository) scanOne(ctx context.Context, where string, args ...any) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, created_at
		FROM users
		WHERE ` + where

	var user User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) userExistsByLoginOrEmail(ctx context.Context, login, email string) (*User, error) {
	return r.scanOne(ctx, "login = $1 OR email = $2", login, email)
}

func (r *userRepository) getUserByLoginOrEmail(ctx context.Context, loginOrEmail string) (*User, error) {
	return r.scanOne(ctx, "login = $1 OR email = $1", loginOrEmail)
}

func (r *userRepository) getUserByID(ctx context.Context, id string) (*User, error) {
	return r.scanOne(ctx, "id = $1", id)
}
