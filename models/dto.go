package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" binding:"omitempty"`
	Role     string `json:"role" binding:"omitempty,oneof=customer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type CategoryRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	IsActive *bool  `json:"is_active"`
}

type ProductRequest struct {
	Name          string         `json:"name" binding:"required,min=3"`
	Description   string         `json:"description"`
	CategoryID    int            `json:"category_id" binding:"required"`
	Price         float64        `json:"price" binding:"required"`
	SalePrice     float64        `json:"sale_price"`
	Stock         int            `json:"stock"`
	TaxClass      string         `json:"tax_class"`
	IsActive      *bool          `json:"is_active"`
	AttributeSets []AttributeSet `json:"attribute_sets"`
	Variants      []Variant      `json:"variants"`
}

type VariantPreviewRequest struct {
	AttributeSets []AttributeSet `json:"attribute_sets" binding:"required"`
	Variants      []Variant      `json:"variants"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

// Quantity is clamped to the cart's allowed range by the store, so any
// value is accepted here.
type SetCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	Notes string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}
