package api

import (
	"strings"
	"time"

	"github.com/phrazzld/marketplace-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username       string `json:"username"       validate:"required,max=50"`
	Email          string `json:"email"          validate:"required,email"`
	Password       string `json:"password"       validate:"required,min=6,max=72"`
	ProfilePicture string `json:"profilePicture" validate:"max=2048"`
}

// normalize trims the identity fields before validation.
func (r *RegisterRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = domain.NormalizeEmail(r.Email)
	r.ProfilePicture = strings.TrimSpace(r.ProfilePicture)
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public profile of a user. It never carries the password.
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SellerResponse is the seller projection attached to product records.
type SellerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ProductResponse is the JSON record of a product.
type ProductResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	SellerID    string          `json:"sellerId"`
	Seller      *SellerResponse `json:"seller,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// newUserResponse projects a domain user to its public profile.
func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}

// newProductResponse converts a domain product to its JSON record.
func newProductResponse(p *domain.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	resp := ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Images:      images,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
	}
	if p.Seller != nil {
		resp.Seller = &SellerResponse{ID: p.Seller.ID, Username: p.Seller.Username}
	}
	return resp
}

// newProductResponses converts a slice of products, never returning nil.
func newProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p))
	}
	return out
}
