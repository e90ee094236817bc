// Package service contains the business logic between handlers and the
// repository layer.
package service

import (
	"context"

	"recipebox/internal/models"
	"recipebox/internal/repository"
	"recipebox/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements account creation, credential checks, and profile
// updates on top of the user repository.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateProfileInput updates the caller's own account. Nil fields are left
// untouched; a non-nil password is re-hashed before storage.
type UpdateProfileInput struct {
	UserID   uint
	Email    *string
	Name     *string
	Password *string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user. The email is normalized to lower-case before
// both the duplicate check and the insert, so lookups stay case-insensitive.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	email := validation.NormalizeEmail(in.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("User with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     in.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the email/password pair. All failure modes return
// the same generic error so a caller cannot probe which credential was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Unable to authenticate with provided credentials")
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("Unable to authenticate with provided credentials")
	}
	return user, nil
}

// GetUserByID returns a user profile.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields to the caller's own account.
// Reads go through GetForUpdate so the password hash survives the Save even
// when the profile is sitting in the cache.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetForUpdate(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = validation.NormalizeEmail(*in.Email)
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
