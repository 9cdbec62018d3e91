package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/config"
	"storefront/models"
)

type ProductRepository struct{}

var ErrProductNotFound = errors.New("product not found")

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const productColumns = `id, slug, name, description, category_id, price, COALESCE(sale_price, 0),
	stock, COALESCE(tax_class, 'none'), COALESCE(image_url, ''), seo_score, is_active,
	COALESCE(attribute_sets, '[]'::jsonb), created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.CategoryID, &p.Price, &p.SalePrice,
		&p.Stock, &p.TaxClass, &p.ImageURL, &p.SeoScore, &p.IsActive,
		&p.AttributeSets, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetAllProducts(page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM products WHERE is_active=true").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := config.DB.Query(context.Background(),
		"SELECT "+productColumns+" FROM products WHERE is_active=true ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

type ProductFilters struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
}

func (r *ProductRepository) FilterProducts(f ProductFilters) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE is_active=true"
	args := []interface{}{}
	paramIndex := 1

	if f.Search != "" {
		query += fmt.Sprintf(" AND LOWER(name) LIKE LOWER($%d)", paramIndex)
		args = append(args, "%"+f.Search+"%")
		paramIndex++
	}

	if f.Category != "" {
		query += fmt.Sprintf(" AND category_id IN (SELECT id FROM categories WHERE slug=$%d)", paramIndex)
		args = append(args, f.Category)
		paramIndex++
	}

	if f.MinPrice > 0 {
		query += fmt.Sprintf(" AND price >= $%d", paramIndex)
		args = append(args, f.MinPrice)
		paramIndex++
	}

	if f.MaxPrice > 0 {
		query += fmt.Sprintf(" AND price <= $%d", paramIndex)
		args = append(args, f.MaxPrice)
		paramIndex++
	}

	switch f.Sort {
	case "name_asc":
		query += " ORDER BY name ASC"
	case "name_desc":
		query += " ORDER BY name DESC"
	case "price_asc":
		query += " ORDER BY price ASC"
	case "price_desc":
		query += " ORDER BY price DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	rows, err := config.DB.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	p, err := scanProduct(config.DB.QueryRow(context.Background(),
		"SELECT "+productColumns+" FROM products WHERE id=$1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) GetBySlug(slug string) (*models.Product, error) {
	p, err := scanProduct(config.DB.QueryRow(context.Background(),
		"SELECT "+productColumns+" FROM products WHERE slug=$1", slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variants, err := r.GetVariants(p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

func (r *ProductRepository) SlugExists(slug string, excludeID int) (bool, error) {
	var count int
	err := config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM products WHERE slug=$1 AND id<>$2", slug, excludeID).Scan(&count)
	return count > 0, err
}

func (r *ProductRepository) CategoryExists(id int) (bool, error) {
	var count int
	err := config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM categories WHERE id=$1", id).Scan(&count)
	return count > 0, err
}

func (r *ProductRepository) Create(p *models.Product) error {
	now := time.Now()
	return config.DB.QueryRow(context.Background(),
		`INSERT INTO products (slug, name, description, category_id, price, sale_price, stock,
			tax_class, image_url, seo_score, is_active, attribute_sets, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, created_at, updated_at`,
		p.Slug, p.Name, p.Description, p.CategoryID, p.Price, p.SalePrice, p.Stock,
		p.TaxClass, p.ImageURL, p.SeoScore, p.IsActive, p.AttributeSets, now, now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Update(p *models.Product) error {
	_, err := config.DB.Exec(context.Background(),
		`UPDATE products SET slug=$1, name=$2, description=$3, category_id=$4, price=$5,
			sale_price=$6, stock=$7, tax_class=$8, image_url=$9, seo_score=$10, is_active=$11,
			attribute_sets=$12, updated_at=$13
		WHERE id=$14`,
		p.Slug, p.Name, p.Description, p.CategoryID, p.Price, p.SalePrice, p.Stock,
		p.TaxClass, p.ImageURL, p.SeoScore, p.IsActive, p.AttributeSets, time.Now(), p.ID)
	return err
}

func (r *ProductRepository) Delete(id int) error {
	tag, err := config.DB.Exec(context.Background(), "DELETE FROM products WHERE id=$1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetVariants(productID int) ([]models.Variant, error) {
	rows, err := config.DB.Query(context.Background(),
		`SELECT variant_id, name, attributes, COALESCE(sku, ''), price_override, stock_override
		FROM product_variants WHERE product_id=$1 ORDER BY position`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []models.Variant{}
	for rows.Next() {
		var v models.Variant
		if err := rows.Scan(&v.ID, &v.Name, &v.Attributes, &v.SKU, &v.PriceOverride, &v.StockOverride); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// ReplaceVariants swaps a product's variant rows for the freshly
// generated set in one transaction. Position preserves combinator order.
func (r *ProductRepository) ReplaceVariants(productID int, variants []models.Variant) error {
	ctx := context.Background()
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM product_variants WHERE product_id=$1", productID); err != nil {
		return err
	}

	for i, v := range variants {
		var sku interface{}
		if strings.TrimSpace(v.SKU) != "" {
			sku = v.SKU
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_variants (variant_id, product_id, name, attributes, sku, price_override, stock_override, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			v.ID, productID, v.Name, v.Attributes, sku, v.PriceOverride, v.StockOverride, i); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
