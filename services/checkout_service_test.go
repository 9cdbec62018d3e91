package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/cart"
	"storefront/models"
	"storefront/repositories"
)

type fakeOrderStore struct {
	created *models.Order
	err     error
}

func (f *fakeOrderStore) Create(order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = 1
	f.created = order
	return nil
}

type fakeProductFinder struct {
	products map[int]*models.Product
}

func (f *fakeProductFinder) GetByID(id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	return p, nil
}

type fakeUserFinder struct{ user *models.User }

func (f *fakeUserFinder) GetByID(id int) (*models.User, error) {
	if f.user == nil {
		return nil, repositories.ErrUserNotFound
	}
	return f.user, nil
}

type fakeMailer struct {
	sentTo    string
	sentTotal string
}

func (f *fakeMailer) SendOrderConfirmation(toEmail string, order *models.Order, formattedTotal string) error {
	f.sentTo = toEmail
	f.sentTotal = formattedTotal
	return nil
}

func seedCart(t *testing.T, storage cart.Storage, userID int) {
	t.Helper()
	store := cart.Open(storage, repositories.CartKey(userID))
	store.Add(cart.Product{ID: 1, Slug: "mens-t-shirt", Name: "Men's T-Shirt", Price: 15.00}, 2)
	store.Add(cart.Product{ID: 2, Slug: "stoneware-mug", Name: "Stoneware Mug", Price: 10.00}, 1)
}

func checkoutFixtures() (*fakeOrderStore, *fakeProductFinder, *fakeUserFinder, *fakeMailer, cart.Storage) {
	orders := &fakeOrderStore{}
	products := &fakeProductFinder{products: map[int]*models.Product{
		1: {ID: 1, Name: "Men's T-Shirt", Price: 20.00, SalePrice: 15.00, TaxClass: "vat"},
		2: {ID: 2, Name: "Stoneware Mug", Price: 10.00, TaxClass: "none"},
	}}
	users := &fakeUserFinder{user: &models.User{ID: 7, Email: "jo@example.com"}}
	mailer := &fakeMailer{}
	return orders, products, users, mailer, cart.NewMemoryStorage()
}

func TestPlaceOrder(t *testing.T) {
	t.Run("totals, tax and discount from the cart lines", func(t *testing.T) {
		orders, products, users, mailer, storage := checkoutFixtures()
		seedCart(t, storage, 7)

		svc := NewCheckoutService(orders, products, users, storage, mailer)
		order, err := svc.PlaceOrder(7, "leave at the door")
		require.NoError(t, err)

		// 2×15.00 + 1×10.00
		assert.Equal(t, 40.00, order.Subtotal)
		// shirt line: regular 20 vs snapshot 15, twice
		assert.Equal(t, 10.00, order.Discount)
		// vat on the shirt line only: 30.00 × 0.20
		assert.Equal(t, 6.00, order.Tax)
		assert.Equal(t, 46.00, order.Total)
		assert.Equal(t, "pending", order.Status)
		require.NotNil(t, order.Notes)
		assert.Equal(t, "leave at the door", *order.Notes)

		// the most recently added product sits at the top of the cart
		require.Len(t, order.Items, 2)
		assert.Equal(t, "Stoneware Mug", order.Items[0].ProductName)
		assert.Equal(t, 10.00, order.Items[0].Total)
		assert.Equal(t, "Men's T-Shirt", order.Items[1].ProductName)
		assert.Equal(t, 30.00, order.Items[1].Total)

		assert.NotNil(t, orders.created)
		assert.Equal(t, "jo@example.com", mailer.sentTo)
		assert.Equal(t, "$46.00", mailer.sentTotal)
	})

	t.Run("cart is cleared after a successful order", func(t *testing.T) {
		orders, products, users, mailer, storage := checkoutFixtures()
		seedCart(t, storage, 7)

		svc := NewCheckoutService(orders, products, users, storage, mailer)
		_, err := svc.PlaceOrder(7, "")
		require.NoError(t, err)

		assert.Empty(t, cart.Open(storage, repositories.CartKey(7)).Lines())
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		orders, products, users, mailer, storage := checkoutFixtures()
		svc := NewCheckoutService(orders, products, users, storage, mailer)

		_, err := svc.PlaceOrder(7, "")
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("cart survives a failed order", func(t *testing.T) {
		orders, products, users, mailer, storage := checkoutFixtures()
		orders.err = errors.New("db down")
		seedCart(t, storage, 7)

		svc := NewCheckoutService(orders, products, users, storage, mailer)
		_, err := svc.PlaceOrder(7, "")
		require.Error(t, err)

		assert.Len(t, cart.Open(storage, repositories.CartKey(7)).Lines(), 2)
	})

	t.Run("vanished product fails the order", func(t *testing.T) {
		orders, products, users, mailer, storage := checkoutFixtures()
		delete(products.products, 2)
		seedCart(t, storage, 7)

		svc := NewCheckoutService(orders, products, users, storage, mailer)
		_, err := svc.PlaceOrder(7, "")
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}
