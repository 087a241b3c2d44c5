package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stayhaven/api/internal/helpers"
	"github.com/stayhaven/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) Register(ctx context.Context, in models.SignupInput) (*models.User, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	if !helpers.IsPasswordStrong(in.Password) {
		return nil, fmt.Errorf("%w: password must contain upper and lower case letters and a digit", models.ErrValidation)
	}

	role := in.Role
	if role == "" {
		role = models.RoleRenter
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role", models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return us.userRepo.CreateUser(ctx, user)
}

func (us *UserService) Authenticate(ctx context.Context, in models.LoginInput) (*models.User, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	user, err := us.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}

	return user, nil
}

func (us *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return us.userRepo.GetUserByID(ctx, id)
}
