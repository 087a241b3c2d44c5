package helpers

import (
	"github.com/stayhaven/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the request-scoped caller identity resolved by the auth
// middleware and passed explicitly into every service operation.
type Identity struct {
	UserID primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Role   models.Role        `json:"role"`
}

func (id Identity) CanBook() bool {
	return id.Role.CanBook()
}

func (id Identity) CanHost() bool {
	return id.Role.CanHost()
}

func (id Identity) CanAdminister() bool {
	return id.Role.CanAdminister()
}

func (id Identity) IsOwner(userID primitive.ObjectID) bool {
	return id.UserID == userID
}
