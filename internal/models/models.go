package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Title       string    `gorm:"uniqueIndex;not null"      json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null"      json:"slug"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Brand       string    `json:"brand,omitempty"`
	Price       float64   `gorm:"not null"                  json:"price"`
	Discount    float64   `gorm:"default:0"                 json:"discount"`
	Thumbnail   string    `json:"thumbnail"`
	Images      []string  `gorm:"serializer:json"           json:"images,omitempty"`
	Category    string    `gorm:"index;not null"            json:"category"`
	Catalogue   string    `gorm:"index"                     json:"catalogue,omitempty"`
	Stock       int       `gorm:"not null;default:0"        json:"stock"`
	Rating      float64   `gorm:"default:0"                 json:"rating"`
	Views       int64     `gorm:"default:0"                 json:"views"`
	IsFeatured  bool      `gorm:"default:false"             json:"is_featured"`
	IsActive    bool      `gorm:"default:true"              json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DiscountedPrice is the catalog price after the discount percentage.
func (p *Product) DiscountedPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Image     string    `json:"image,omitempty"`
	IsActive  bool      `gorm:"default:true"         json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ShippingAddress is denormalized into the order. It is a copy, not a
// reference, so later address-book edits never change past orders.
type ShippingAddress struct {
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Contact string `gorm:"not null" json:"contact"`
	Address string `gorm:"not null" json:"address"`
	State   string `gorm:"not null" json:"state"`
	Country string `gorm:"not null" json:"country"`
}

// OrderItem freezes the product's display fields at purchase time.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"    json:"product_id"`

	Title     string  `gorm:"not null" json:"title"`
	Slug      string  `gorm:"not null" json:"slug"`
	Thumbnail string  `json:"thumbnail"`
	Price     float64 `gorm:"not null" json:"price"`
	Discount  float64 `gorm:"default:0" json:"discount"`
	Category  string  `json:"category"`

	Quantity  int     `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	Subtotal  float64 `gorm:"not null" json:"subtotal"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Order struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"   json:"id"`
	OrderNumber string     `gorm:"uniqueIndex;not null"   json:"order_number"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"        json:"user_id,omitempty"`

	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`

	Subtotal     float64 `gorm:"not null"  json:"subtotal"`
	Tax          float64 `gorm:"default:0" json:"tax"`
	ShippingCost float64 `gorm:"default:0" json:"shipping_cost"`
	Total        float64 `gorm:"not null"  json:"total"`

	Status        OrderStatus   `gorm:"not null;default:pending" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:pending" json:"payment_status"`

	InvoiceSent   bool       `gorm:"default:false" json:"invoice_sent"`
	InvoiceSentAt *time.Time `json:"invoice_sent_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `gorm:"not null"             json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	IsActive     bool      `gorm:"default:true"         json:"is_active"`

	LoginAttempts int        `gorm:"default:0" json:"-"`
	LockUntil     *time.Time `json:"-"`
	LastLogin     *time.Time `json:"last_login,omitempty"`

	EmailVerified          bool       `gorm:"default:false" json:"email_verified"`
	EmailVerificationToken string     `json:"-"`
	PasswordResetToken     string     `json:"-"`
	PasswordResetExpires   *time.Time `json:"-"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name    string    `gorm:"not null"                 json:"name"`
	Email   string    `json:"email"`
	Contact string    `gorm:"not null"                 json:"contact"`
	Address string    `gorm:"not null"                 json:"address"`
	State   string    `json:"state"`
	Country string    `json:"country"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Blog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null"             json:"title"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Content   string    `gorm:"not null"             json:"content"`
	Author    string    `json:"author"`
	Thumbnail string    `json:"thumbnail"`
	Published bool      `gorm:"default:false;index"  json:"published"`
	Views     int64     `gorm:"default:0"            json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type BannerType string

const (
	BannerTypeHero     BannerType = "hero"
	BannerTypeCarousel BannerType = "carousel"
	BannerTypePromo    BannerType = "promo"
)

type Banner struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Type      BannerType `gorm:"not null;index"       json:"type"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle,omitempty"`
	Image     string     `gorm:"not null"             json:"image"`
	Link      string     `json:"link,omitempty"`
	Published bool       `gorm:"default:false"        json:"published"`
	SortOrder int        `gorm:"default:0"            json:"sort_order"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null"             json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	IsActive    bool      `gorm:"default:true"         json:"is_active"`
	SortOrder   int       `gorm:"default:0"            json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Product{}, &Category{},
		&Order{}, &OrderItem{},
		&User{}, &Address{},
		&Blog{}, &Banner{}, &Service{},
	}
}
