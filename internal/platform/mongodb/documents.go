package mongodb

import (
	"time"

	"github.com/phrazzld/marketplace-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userDocument is the stored shape of a user.
type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	Password       string             `bson:"password"`
	ProfilePicture string             `bson:"profilePicture"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.HashedPassword,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		HashedPassword: d.Password,
		ProfilePicture: d.ProfilePicture,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

// productDocument is the stored shape of a product. The seller reference is
// kept in the "sellerId" field.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Images      []string           `bson:"images"`
	SellerID    primitive.ObjectID `bson:"sellerId"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d productDocument) toDomain() *domain.Product {
	images := make([]string, len(d.Images))
	copy(images, d.Images)

	return &domain.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Images:      images,
		SellerID:    d.SellerID.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}
