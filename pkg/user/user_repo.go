package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateUser(ctx context.Context, user User) error {
	query := `INSERT INTO app_user (id, username, display_name, created_at) VALUES ($1, $2, $3, $4)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, user.ID, user.Username, user.DisplayName, user.CreatedAt.Unix())
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetUser(ctx context.Context, id string) (User, error) {
	query := `SELECT id, username, display_name, created_at FROM app_user WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var user User
	var createdAt int64
	if err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNoUser
		}
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return user, nil
}

func (r *RepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, username, display_name, created_at FROM app_user ORDER BY username`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		var createdAt int64
		if err := rows.Scan(&user.ID, &user.Username, &user.DisplayName, &createdAt); err != nil {
			err := fmt.Errorf("could not scan user: %w", err)
			log.Error(err)
			return nil, err
		}
		user.CreatedAt = time.Unix(createdAt, 0).UTC()
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return users, nil
}

func (r *RepoImpl) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(1) FROM app_user WHERE username = $1`
	row := r.db.QueryRowContext(ctx, query, username)
	var count int
	if err := row.Scan(&count); err != nil {
		err := fmt.Errorf("could not check username availability: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

func (r *RepoImpl) DeleteUser(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM app_user WHERE id = $1`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
