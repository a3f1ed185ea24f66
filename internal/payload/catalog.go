package payload

type CreateProductRequest struct {
	Name        string  `json:"productName"        validate:"required"`
	Price       float64 `json:"productPrice"       validate:"required,gt=0"`
	Category    string  `json:"productCategory"    validate:"required"`
	SkinType    string  `json:"productSkinType"    validate:"required"`
	Description string  `json:"productDescription" validate:"required,max=500"`
	Image       string  `json:"productImage"       validate:"required"`
	Quantity    int     `json:"productQuantity"    validate:"required,gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"productName"`
	Price       *float64 `json:"productPrice"       validate:"omitempty,gt=0"`
	Category    *string  `json:"productCategory"`
	SkinType    *string  `json:"productSkinType"`
	Description *string  `json:"productDescription" validate:"omitempty,max=500"`
	Image       *string  `json:"productImage"`
	Quantity    *int     `json:"productQuantity"    validate:"omitempty,gte=0"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
}

type UpdateCartQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
}

type WishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type CreateReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating"    validate:"required,gte=1,lte=5"`
	Review    string `json:"review"`
}

type UpdateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review"`
}

type PlaceOrderRequest struct {
	Carts      []string `json:"carts"      validate:"required,min=1"`
	TotalPrice float64  `json:"totalPrice" validate:"required,gt=0"`
	Name       string   `json:"name"       validate:"required"`
	Email      string   `json:"email"      validate:"required,email"`
	Street     string   `json:"street"     validate:"required"`
	City       string   `json:"city"       validate:"required"`
	Phone      string   `json:"phone"      validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type InitializePaymentRequest struct {
	OrderID    string  `json:"orderId"     validate:"required"`
	TotalPrice float64 `json:"totalPrice"  validate:"required,gt=0"`
	WebsiteURL string  `json:"website_url" validate:"required"`
}
