package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/config"
	"storefront/models"
)

type CategoryRepository struct{}

var ErrCategoryNotFound = errors.New("category not found")

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	rows, err := config.DB.Query(context.Background(),
		"SELECT id, slug, name, is_active, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Slug, &cat.Name, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	var cat models.Category
	err := config.DB.QueryRow(context.Background(),
		"SELECT id, slug, name, is_active, created_at FROM categories WHERE id=$1", id).
		Scan(&cat.ID, &cat.Slug, &cat.Name, &cat.IsActive, &cat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *models.Category) error {
	return config.DB.QueryRow(context.Background(),
		"INSERT INTO categories (slug, name, is_active, created_at) VALUES ($1,$2,$3,$4) RETURNING id, created_at",
		cat.Slug, cat.Name, cat.IsActive, time.Now()).Scan(&cat.ID, &cat.CreatedAt)
}

func (r *CategoryRepository) Update(cat *models.Category) error {
	tag, err := config.DB.Exec(context.Background(),
		"UPDATE categories SET slug=$1, name=$2, is_active=$3 WHERE id=$4",
		cat.Slug, cat.Name, cat.IsActive, cat.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(id int) error {
	var productCount int
	if err := config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM products WHERE category_id=$1", id).Scan(&productCount); err != nil {
		return err
	}
	if productCount > 0 {
		return errors.New("category still has products")
	}

	tag, err := config.DB.Exec(context.Background(), "DELETE FROM categories WHERE id=$1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
