package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleRenter Role = "renter"
	RoleHost   Role = "host"
	// RoleBoth can rent and host, and carries admin rights.
	RoleBoth Role = "both"
)

func (r Role) Valid() bool {
	switch r {
	case RoleRenter, RoleHost, RoleBoth:
		return true
	}
	return false
}

func (r Role) CanBook() bool {
	return r == RoleRenter || r == RoleBoth
}

func (r Role) CanHost() bool {
	return r == RoleHost || r == RoleBoth
}

func (r Role) CanAdminister() bool {
	return r == RoleBoth
}

type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Email           string               `bson:"email" json:"email"`
	PasswordHash    string               `bson:"password" json:"-"`
	Role            Role                 `bson:"role" json:"role"`
	Bio             string               `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfileImage    string               `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	SavedProperties []primitive.ObjectID `bson:"saved_properties,omitempty" json:"saved_properties,omitempty"`
	CreatedAt       time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the slice of a user embedded in booking views.
type UserSummary struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}
