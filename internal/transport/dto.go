package transport

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type CreateProductRequest struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Catalogue   string   `json:"catalogue"`
	Stock       int      `json:"stock"`
	IsFeatured  bool     `json:"is_featured"`
	IsActive    *bool    `json:"is_active"`
}

type PatchProductRequest struct {
	Title       *string  `json:"title"`
	Summary     *string  `json:"summary"`
	Description *string  `json:"description"`
	Brand       *string  `json:"brand"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
	Thumbnail   *string  `json:"thumbnail"`
	Images      []string `json:"images"`
	Category    *string  `json:"category"`
	Catalogue   *string  `json:"catalogue"`
	Stock       *int     `json:"stock"`
	IsFeatured  *bool    `json:"is_featured"`
	IsActive    *bool    `json:"is_active"`
}

type ProductListQuery struct {
	Category string
	Active   *bool
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Page     int
	Size     int
}

type ShippingAddressRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Address string `json:"address"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type CreateOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"qty"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem       `json:"items"`
	ShippingAddress *ShippingAddressRequest `json:"shipping_address"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type CreateBlogRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Thumbnail string `json:"thumbnail"`
	Published bool   `json:"published"`
}

type PatchBlogRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Author    *string `json:"author"`
	Thumbnail *string `json:"thumbnail"`
	Published *bool   `json:"published"`
}

type CreateBannerRequest struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image"`
	Link      string `json:"link"`
	Published bool   `json:"published"`
	SortOrder int    `json:"sort_order"`
}

type PatchBannerRequest struct {
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	Image     *string `json:"image"`
	Link      *string `json:"link"`
	Published *bool   `json:"published"`
	SortOrder *int    `json:"sort_order"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	IsActive *bool  `json:"is_active"`
}

type CreateServiceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
}
