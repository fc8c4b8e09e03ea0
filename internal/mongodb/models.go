package mongodb

import (
	"fmt"
	"time"

	"github.com/franciscoedibles/storefront/internal/cart"
	"github.com/franciscoedibles/storefront/internal/models"
)

type menuItemDocument struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	Price       int64  `bson:"price"`
	ImageURL    string `bson:"image_url"`
	Category    string `bson:"category"`
	SoldOut     bool   `bson:"sold_out"`
}

func toMenuItemDocument(item *models.MenuItem) *menuItemDocument {
	return &menuItemDocument{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		Category:    item.Category,
		SoldOut:     item.SoldOut,
	}
}

func (d *menuItemDocument) toModel() (*models.MenuItem, error) {
	if d.ID == "" || d.Name == "" {
		return nil, fmt.Errorf("malformed menu item document: missing id or name")
	}
	if d.Price < 0 {
		return nil, fmt.Errorf("malformed menu item document %s: negative price", d.ID)
	}
	return &models.MenuItem{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		Category:    d.Category,
		SoldOut:     d.SoldOut,
	}, nil
}

type couponDocument struct {
	ID            string `bson:"_id"`
	Code          string `bson:"code"`
	DiscountType  string `bson:"discount_type"`
	DiscountValue int64  `bson:"discount_value"`
	IsActive      bool   `bson:"is_active"`
}

func toCouponDocument(c *models.Coupon) *couponDocument {
	return &couponDocument{
		ID:            c.ID,
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		IsActive:      c.IsActive,
	}
}

func (d *couponDocument) toModel() (*models.Coupon, error) {
	discountType := models.DiscountType(d.DiscountType)
	if !discountType.Valid() {
		return nil, fmt.Errorf("malformed coupon document %s: unknown discount type %q", d.ID, d.DiscountType)
	}
	if d.DiscountValue < 0 {
		return nil, fmt.Errorf("malformed coupon document %s: negative discount value", d.ID)
	}
	return &models.Coupon{
		ID:            d.ID,
		Code:          d.Code,
		DiscountType:  discountType,
		DiscountValue: d.DiscountValue,
		IsActive:      d.IsActive,
	}, nil
}

type chefDocument struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Title    string `bson:"title"`
	Bio      string `bson:"bio"`
	ImageURL string `bson:"image_url"`
}

func toChefDocument(c *models.Chef) *chefDocument {
	return &chefDocument{
		ID:       c.ID,
		Name:     c.Name,
		Title:    c.Title,
		Bio:      c.Bio,
		ImageURL: c.ImageURL,
	}
}

func (d *chefDocument) toModel() *models.Chef {
	return &models.Chef{
		ID:       d.ID,
		Name:     d.Name,
		Title:    d.Title,
		Bio:      d.Bio,
		ImageURL: d.ImageURL,
	}
}

type orderLineDocument struct {
	ItemID    string `bson:"item_id"`
	Name      string `bson:"name"`
	UnitPrice int64  `bson:"unit_price"`
	Quantity  int    `bson:"quantity"`
}

type orderDocument struct {
	ID            string              `bson:"_id"`
	CustomerName  string              `bson:"customer_name"`
	CustomerEmail string              `bson:"customer_email,omitempty"`
	Phone         string              `bson:"phone"`
	Address       string              `bson:"address"`
	City          string              `bson:"city"`
	State         string              `bson:"state"`
	Lines         []orderLineDocument `bson:"lines"`
	Subtotal      int64               `bson:"subtotal"`
	Discount      int64               `bson:"discount"`
	DeliveryFee   int64               `bson:"delivery_fee"`
	Total         int64               `bson:"total"`
	CouponCode    string              `bson:"coupon_code,omitempty"`
	PaymentMethod string              `bson:"payment_method"`
	Status        string              `bson:"status"`
	CreatedAt     time.Time           `bson:"created_at"`
}

func toOrderDocument(order *models.Order) *orderDocument {
	doc := &orderDocument{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Phone:         order.Phone,
		Address:       order.Address,
		City:          order.City,
		State:         order.State,
		Lines:         make([]orderLineDocument, len(order.Lines)),
		Subtotal:      order.Subtotal,
		Discount:      order.Discount,
		DeliveryFee:   order.DeliveryFee,
		Total:         order.Total,
		CouponCode:    order.CouponCode,
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
	}
	for i, l := range order.Lines {
		doc.Lines[i] = orderLineDocument{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	return doc
}

func (d *orderDocument) toModel() (*models.Order, error) {
	status := models.OrderStatus(d.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("malformed order document %s: unknown status %q", d.ID, d.Status)
	}

	lines := make([]models.OrderLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.OrderLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}

	return &models.Order{
		ID:            d.ID,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Phone:         d.Phone,
		Address:       d.Address,
		City:          d.City,
		State:         d.State,
		Lines:         lines,
		Subtotal:      d.Subtotal,
		Discount:      d.Discount,
		DeliveryFee:   d.DeliveryFee,
		Total:         d.Total,
		CouponCode:    d.CouponCode,
		PaymentMethod: models.PaymentMethod(d.PaymentMethod),
		Status:        status,
		CreatedAt:     d.CreatedAt,
	}, nil
}

type cartLineDocument struct {
	ItemID    string `bson:"item_id"`
	Name      string `bson:"name"`
	UnitPrice int64  `bson:"unit_price"`
	Quantity  int    `bson:"quantity"`
}

type cartDocument struct {
	SessionID string             `bson:"_id"`
	Lines     []cartLineDocument `bson:"lines"`
	Coupon    *couponDocument    `bson:"coupon,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toCartDocument(sessionID string, state cart.State) *cartDocument {
	doc := &cartDocument{
		SessionID: sessionID,
		Lines:     make([]cartLineDocument, len(state.Lines)),
		UpdatedAt: time.Now().UTC(),
	}
	for i, l := range state.Lines {
		doc.Lines[i] = cartLineDocument{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	if state.Coupon != nil {
		doc.Coupon = toCouponDocument(state.Coupon)
	}
	return doc
}

func (d *cartDocument) toState() cart.State {
	state := cart.State{
		Lines: make([]cart.Line, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		// lines with non-positive quantities are never stored by the
		// cart; drop any that show up in a hand-edited document
		if l.Quantity <= 0 {
			continue
		}
		state.Lines = append(state.Lines, cart.Line{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	if d.Coupon != nil {
		if coupon, err := d.Coupon.toModel(); err == nil {
			state.Coupon = coupon
		}
	}
	return state
}
