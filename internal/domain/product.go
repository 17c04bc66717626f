package domain

import (
	"fmt"
	"strings"
	"time"
)

// Validation messages returned to callers for product input.
const (
	MsgTitleRequired       = "Title is required"
	MsgDescriptionRequired = "Description is required"
	MsgCategoryRequired    = "Category is required"
	MsgPriceNotNumber      = "Price must be a number"
	MsgPriceNegative       = "Price cannot be negative"
	MsgTitleEmpty          = "Title cannot be empty"
	MsgDescriptionEmpty    = "Description cannot be empty"
	MsgCategoryEmpty       = "Category cannot be empty"
)

// Product is an item listed for sale by a single seller.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Category    string
	Images      []string
	SellerID    string
	CreatedAt   time.Time

	// Seller is populated when the product is returned with its seller's username.
	Seller *Seller
}

// Seller is the public projection of a User attached to a Product.
type Seller struct {
	ID       string
	Username string
}

// OwnedBy reports whether subjectID is the product's seller.
// Identifiers are compared in their canonical string form.
func (p *Product) OwnedBy(subjectID string) bool {
	return subjectID != "" && p.SellerID == subjectID
}

// ProductInput is the caller-supplied data for a new product.
type ProductInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       NumericInput `json:"price"`
	Category    string       `json:"category"`
	Images      []string     `json:"images"`
}

// Validate checks every required field and reports all failures together.
func (in ProductInput) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(in.Title) == "" {
		errs.Add("title", MsgTitleRequired)
	}
	if strings.TrimSpace(in.Description) == "" {
		errs.Add("description", MsgDescriptionRequired)
	}
	validatePrice(&errs, in.Price, true)
	if strings.TrimSpace(in.Category) == "" {
		errs.Add("category", MsgCategoryRequired)
	}

	return errs.Err()
}

// NewProduct builds a validated Product owned by sellerID.
// String fields are trimmed and a missing image list becomes empty.
func NewProduct(sellerID string, in ProductInput, now time.Time) (*Product, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidID)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	images := make([]string, len(in.Images))
	copy(images, in.Images)

	return &Product{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Value,
		Category:    strings.TrimSpace(in.Category),
		Images:      images,
		SellerID:    sellerID,
		CreatedAt:   now.UTC(),
	}, nil
}

// ProductPatch is a partial product update. Nil fields were absent from the request.
type ProductPatch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Price       NumericInput `json:"price"`
	Category    *string      `json:"category"`
	Images      []string     `json:"images"`
}

// Validate checks only the fields present in the patch.
func (p ProductPatch) Validate() error {
	var errs ValidationErrors

	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		errs.Add("title", MsgTitleEmpty)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		errs.Add("description", MsgDescriptionEmpty)
	}
	validatePrice(&errs, p.Price, false)
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		errs.Add("category", MsgCategoryEmpty)
	}

	return errs.Err()
}

// Changes converts a validated patch into the set of values to write.
// An empty image list is treated as absent.
func (p ProductPatch) Changes() ProductChanges {
	var c ProductChanges
	if p.Title != nil {
		c.Title = trimmed(*p.Title)
	}
	if p.Description != nil {
		c.Description = trimmed(*p.Description)
	}
	if p.Price.Present && p.Price.Numeric {
		price := p.Price.Value
		c.Price = &price
	}
	if p.Category != nil {
		c.Category = trimmed(*p.Category)
	}
	if len(p.Images) > 0 {
		c.Images = make([]string, len(p.Images))
		copy(c.Images, p.Images)
	}
	return c
}

// ProductChanges holds normalized values for a merge update.
// Nil fields leave the stored value untouched.
type ProductChanges struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Images      []string
}

// IsEmpty reports whether there is nothing to write.
func (c ProductChanges) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Price == nil &&
		c.Category == nil && c.Images == nil
}

// ApplyTo merges the changes into p.
func (c ProductChanges) ApplyTo(p *Product) {
	if c.Title != nil {
		p.Title = *c.Title
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Images != nil {
		p.Images = make([]string, len(c.Images))
		copy(p.Images, c.Images)
	}
}

func validatePrice(errs *ValidationErrors, price NumericInput, required bool) {
	if !price.Present {
		if required {
			errs.Add("price", MsgPriceNotNumber)
		}
		return
	}
	if !price.Numeric {
		errs.Add("price", MsgPriceNotNumber)
		return
	}
	if price.Value < 0 {
		errs.Add("price", MsgPriceNegative)
	}
}

func trimmed(s string) *string {
	s = strings.TrimSpace(s)
	return &s
}
