package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/config"
	"storefront/models"
)

type UserRepository struct{}

var ErrUserNotFound = errors.New("user not found")

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = `id, email, password, role, COALESCE(full_name, ''), COALESCE(phone, ''),
	COALESCE(address, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.FullName, &u.Phone,
		&u.Address, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(config.DB.QueryRow(context.Background(),
		"SELECT "+userColumns+" FROM users WHERE email=$1", email))
}

func (r *UserRepository) GetByID(id int) (*models.User, error) {
	return scanUser(config.DB.QueryRow(context.Background(),
		"SELECT "+userColumns+" FROM users WHERE id=$1", id))
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM users WHERE email=$1", email).Scan(&count)
	return count > 0, err
}

func (r *UserRepository) Create(u *models.User) error {
	now := time.Now()
	return config.DB.QueryRow(context.Background(),
		`INSERT INTO users (email, password, role, full_name, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id, created_at, updated_at`,
		u.Email, u.Password, u.Role, u.FullName, u.Phone, u.Address, now, now,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Update(u *models.User) error {
	_, err := config.DB.Exec(context.Background(),
		`UPDATE users SET email=$1, role=$2, full_name=$3, phone=$4, address=$5, updated_at=$6
		WHERE id=$7`,
		u.Email, u.Role, u.FullName, u.Phone, u.Address, time.Now(), u.ID)
	return err
}

func (r *UserRepository) UpdatePassword(id int, hashed string) error {
	_, err := config.DB.Exec(context.Background(),
		"UPDATE users SET password=$1, updated_at=$2 WHERE id=$3", hashed, time.Now(), id)
	return err
}

func (r *UserRepository) GetAll(page, limit int) ([]models.User, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := config.DB.Query(context.Background(),
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) Delete(id int) error {
	tag, err := config.DB.Exec(context.Background(), "DELETE FROM users WHERE id=$1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
