package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"storefront/cart"
	"storefront/config"
	"storefront/models"
	"storefront/repositories"
	"storefront/utils"
)

type OrderStore interface {
	Create(order *models.Order) error
}

type ProductFinder interface {
	GetByID(id int) (*models.Product, error)
}

type UserFinder interface {
	GetByID(id int) (*models.User, error)
}

type Mailer interface {
	SendOrderConfirmation(toEmail string, order *models.Order, formattedTotal string) error
}

type CheckoutService struct {
	orders   OrderStore
	products ProductFinder
	users    UserFinder
	storage  cart.Storage
	mailer   Mailer
	currency string
}

var ErrEmptyCart = errors.New("cart is empty")

func NewCheckoutService(orders OrderStore, products ProductFinder, users UserFinder, storage cart.Storage, mailer Mailer) *CheckoutService {
	currency := "USD"
	if config.AppConfig != nil {
		currency = config.AppConfig.Currency
	}
	return &CheckoutService{
		orders:   orders,
		products: products,
		users:    users,
		storage:  storage,
		mailer:   mailer,
		currency: currency,
	}
}

// PlaceOrder turns the customer's cart into an order: line totals and
// tax in decimal arithmetic, stock checked and decremented inside the
// order transaction, cart cleared on success, confirmation mail sent
// best-effort.
func (s *CheckoutService) PlaceOrder(userID int, notes string) (*models.Order, error) {
	store := cart.Open(s.storage, repositories.CartKey(userID))
	lines := store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := decimal.Zero
	discount := decimal.Zero
	tax := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))

	for _, line := range lines {
		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		lineTotal := decimal.NewFromFloat(line.Price).Mul(qty)
		subtotal = subtotal.Add(lineTotal)

		// The cart snapshots the selling price; the spread against
		// the regular price is reported as the order discount.
		d := utils.ComputeDiscount(product.Price, line.Price)
		discount = discount.Add(decimal.NewFromFloat(d.Amount).Mul(qty))

		rate := utils.GetTaxRate(product.TaxClass)
		tax = tax.Add(lineTotal.Mul(decimal.NewFromFloat(rate)))

		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Total:       lineTotal.Round(2).InexactFloat64(),
		})
	}

	total := subtotal.Add(tax).Round(2)

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	order := &models.Order{
		OrderNumber: generateOrderNumber(),
		UserID:      userID,
		Subtotal:    subtotal.Round(2).InexactFloat64(),
		Discount:    discount.Round(2).InexactFloat64(),
		Tax:         tax.Round(2).InexactFloat64(),
		Total:       total.InexactFloat64(),
		Currency:    s.currency,
		Status:      "pending",
		Notes:       notesPtr,
		Items:       items,
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	store.Clear()

	if s.mailer != nil && s.users != nil {
		if user, err := s.users.GetByID(userID); err == nil {
			formatted := utils.FormatMoney(order.Total, order.Currency)
			if err := s.mailer.SendOrderConfirmation(user.Email, order, formatted); err != nil {
				log.Printf("Failed to send order confirmation for %s: %v", order.OrderNumber, err)
			}
		}
	}

	return order, nil
}

func generateOrderNumber() string {
	now := time.Now()
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), now.UnixNano()%1000000)
}
