package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/voblako/voblako/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Create(email, passwordHash string) (*model.User, error)
	ByID(id int64) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	Reset() error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

// Create inserts a user. IDs are assigned by the database sequence and
// never reused. Email is expected to be normalized by the caller.
func (r *userRepository) Create(email, passwordHash string) (*model.User, error) {
	createdAt := time.Now().UTC()
	query := `INSERT INTO users (email, password_hash, created_at) VALUES ($1, $2, $3)`

	res, err := r.db.Exec(query, email, passwordHash, createdAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}, nil
}

func (r *userRepository) ByID(id int64) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

// Reset removes every user. The AUTOINCREMENT sequence is left untouched
// so identifiers are not handed out twice.
func (r *userRepository) Reset() error {
	_, err := r.db.Exec(`DELETE FROM users`)
	return err
}
