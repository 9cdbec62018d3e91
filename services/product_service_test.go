package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/repositories"
)

type fakeProductStore struct {
	products     map[int]*models.Product
	variants     map[int][]models.Variant
	takenSlugs   map[string]int
	categories   map[int]bool
	nextID       int
	replaceCalls int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products:   map[int]*models.Product{},
		variants:   map[int][]models.Variant{},
		takenSlugs: map[string]int{},
		categories: map[int]bool{1: true},
		nextID:     1,
	}
}

func (f *fakeProductStore) GetByID(id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductStore) SlugExists(slug string, excludeID int) (bool, error) {
	owner, ok := f.takenSlugs[slug]
	return ok && owner != excludeID, nil
}

func (f *fakeProductStore) CategoryExists(id int) (bool, error) {
	return f.categories[id], nil
}

func (f *fakeProductStore) Create(p *models.Product) error {
	p.ID = f.nextID
	f.nextID++
	clone := *p
	f.products[p.ID] = &clone
	f.takenSlugs[p.Slug] = p.ID
	return nil
}

func (f *fakeProductStore) Update(p *models.Product) error {
	clone := *p
	f.products[p.ID] = &clone
	f.takenSlugs[p.Slug] = p.ID
	return nil
}

func (f *fakeProductStore) Delete(id int) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductStore) GetVariants(productID int) ([]models.Variant, error) {
	return f.variants[productID], nil
}

func (f *fakeProductStore) ReplaceVariants(productID int, variants []models.Variant) error {
	f.variants[productID] = variants
	f.replaceCalls++
	return nil
}

func colorSizeSets() []models.AttributeSet {
	return []models.AttributeSet{
		{Name: "Color", Values: []string{"Red", "Blue"}, UseForVariants: true},
		{Name: "Size", Values: []string{"S", "M"}, UseForVariants: true},
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("derives slug, seo score and variants", func(t *testing.T) {
		store := newFakeProductStore()
		svc := NewProductService(store)

		product, err := svc.CreateProduct(models.ProductRequest{
			Name:          "Men's T-Shirt",
			CategoryID:    1,
			Price:         19.99,
			AttributeSets: colorSizeSets(),
		})
		require.NoError(t, err)

		assert.Equal(t, "mens-t-shirt", product.Slug)
		assert.Greater(t, product.SeoScore, 0)
		assert.Len(t, product.Variants, 4)
		assert.Equal(t, 1, store.replaceCalls)
	})

	t.Run("slug collisions get a numeric suffix", func(t *testing.T) {
		store := newFakeProductStore()
		svc := NewProductService(store)

		first, err := svc.CreateProduct(models.ProductRequest{Name: "Mug", CategoryID: 1, Price: 10})
		require.NoError(t, err)
		second, err := svc.CreateProduct(models.ProductRequest{Name: "Mug!", CategoryID: 1, Price: 12})
		require.NoError(t, err)

		assert.Equal(t, "mug", first.Slug)
		assert.Equal(t, "mug-2", second.Slug)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		svc := NewProductService(newFakeProductStore())
		_, err := svc.CreateProduct(models.ProductRequest{Name: "Mug", CategoryID: 99, Price: 10})
		assert.ErrorIs(t, err, ErrCategoryMissing)
	})
}

func TestUpdateProductCarriesVariantOverridesForward(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store)

	product, err := svc.CreateProduct(models.ProductRequest{
		Name:          "Men's T-Shirt",
		CategoryID:    1,
		Price:         19.99,
		AttributeSets: colorSizeSets(),
	})
	require.NoError(t, err)

	// Admin sets a price override on one generated variant.
	price := 24.99
	edited := product.Variants[2]
	edited.PriceOverride = &price
	edited.SKU = "TSHIRT-BLU-S"

	// Re-save with the same attribute sets and the edit submitted.
	updated, err := svc.UpdateProduct(product.ID, models.ProductRequest{
		Name:          "Men's T-Shirt",
		CategoryID:    1,
		Price:         19.99,
		AttributeSets: colorSizeSets(),
		Variants:      []models.Variant{edited},
	})
	require.NoError(t, err)
	require.Len(t, updated.Variants, 4)

	require.NotNil(t, updated.Variants[2].PriceOverride)
	assert.Equal(t, 24.99, *updated.Variants[2].PriceOverride)
	assert.Equal(t, "TSHIRT-BLU-S", updated.Variants[2].SKU)

	// A second save without resubmitting the override keeps it, because
	// the stored variants are merged in by id.
	again, err := svc.UpdateProduct(product.ID, models.ProductRequest{
		Name:          "Men's T-Shirt",
		CategoryID:    1,
		Price:         19.99,
		AttributeSets: colorSizeSets(),
	})
	require.NoError(t, err)
	require.NotNil(t, again.Variants[2].PriceOverride)
	assert.Equal(t, 24.99, *again.Variants[2].PriceOverride)

	// Dropping the Size axis regenerates a smaller set and stale
	// overrides disappear with their combinations.
	smaller, err := svc.UpdateProduct(product.ID, models.ProductRequest{
		Name:       "Men's T-Shirt",
		CategoryID: 1,
		Price:      19.99,
		AttributeSets: []models.AttributeSet{
			{Name: "Color", Values: []string{"Red", "Blue"}, UseForVariants: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, smaller.Variants, 2)
	for _, v := range smaller.Variants {
		assert.Nil(t, v.PriceOverride)
	}
}

func TestPreviewVariantsDoesNotPersist(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store)

	variants := svc.PreviewVariants(models.VariantPreviewRequest{AttributeSets: colorSizeSets()})
	assert.Len(t, variants, 4)
	assert.Zero(t, store.replaceCalls)
}
