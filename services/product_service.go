package services

import (
	"errors"
	"fmt"
	"strings"

	"storefront/config"
	"storefront/models"
	"storefront/utils"
)

// ProductStore is the slice of the product repository this service
// needs; tests swap in a fake.
type ProductStore interface {
	GetByID(id int) (*models.Product, error)
	SlugExists(slug string, excludeID int) (bool, error)
	CategoryExists(id int) (bool, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id int) error
	GetVariants(productID int) ([]models.Variant, error)
	ReplaceVariants(productID int, variants []models.Variant) error
}

type ProductService struct {
	repo ProductStore
}

var ErrCategoryMissing = errors.New("category not found")

func NewProductService(repo ProductStore) *ProductService {
	return &ProductService{repo: repo}
}

// uniqueSlug derives a slug from the product name and suffixes -2, -3…
// until it no longer collides with another product.
func (s *ProductService) uniqueSlug(name string, excludeID int) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "product"
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := s.repo.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *ProductService) CreateProduct(req models.ProductRequest) (*models.Product, error) {
	exists, err := s.repo.CategoryExists(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCategoryMissing
	}

	slug, err := s.uniqueSlug(req.Name, 0)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	taxClass := req.TaxClass
	if taxClass == "" && config.AppConfig != nil {
		taxClass = config.AppConfig.TaxClass
	}

	product := &models.Product{
		Slug:          slug,
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
		TaxClass:      taxClass,
		SeoScore:      utils.ComputeSeoScore(slug),
		IsActive:      isActive,
		AttributeSets: req.AttributeSets,
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	product.Variants = utils.GenerateVariants(req.AttributeSets, req.Variants)
	if err := s.repo.ReplaceVariants(product.ID, product.Variants); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies the form payload over the stored product and
// regenerates the variant list. Overrides are carried forward by stable
// id from both the stored variants and whatever the form submitted, the
// form winning on conflict.
func (s *ProductService) UpdateProduct(id int, req models.ProductRequest) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.CategoryExists(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCategoryMissing
	}

	if !strings.EqualFold(strings.TrimSpace(req.Name), product.Name) {
		slug, err := s.uniqueSlug(req.Name, id)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}

	stored, err := s.repo.GetVariants(id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Description = strings.TrimSpace(req.Description)
	product.CategoryID = req.CategoryID
	product.Price = req.Price
	product.SalePrice = req.SalePrice
	product.Stock = req.Stock
	product.TaxClass = req.TaxClass
	product.SeoScore = utils.ComputeSeoScore(product.Slug)
	product.AttributeSets = req.AttributeSets
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	product.Variants = utils.GenerateVariants(req.AttributeSets, append(stored, req.Variants...))
	if err := s.repo.ReplaceVariants(id, product.Variants); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(id int) error {
	return s.repo.Delete(id)
}

// PreviewVariants runs the combinator over a draft form payload without
// touching storage. The admin form calls this as attribute sets change.
func (s *ProductService) PreviewVariants(req models.VariantPreviewRequest) []models.Variant {
	return utils.GenerateVariants(req.AttributeSets, req.Variants)
}
