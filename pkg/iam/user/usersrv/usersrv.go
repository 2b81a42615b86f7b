package usersrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maprecruit/platform/pkg/errx"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides business operations for platform users
type UserService struct {
	userRepo user.UserRepository
}

// NewUserService creates a new instance of the user service
func NewUserService(userRepo user.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserRequest - DTO for provisioning a user
type CreateUserRequest struct {
	Email                string             `json:"email" validate:"required"`
	Password             string             `json:"password" validate:"required"`
	FirstName            string             `json:"first_name"`
	LastName             string             `json:"last_name"`
	RoleID               kernel.RoleID      `json:"role_id" validate:"required"`
	CompanyID            kernel.CompanyID   `json:"company_id" validate:"required"`
	AccessibleCompanyIDs []kernel.CompanyID `json:"accessible_company_ids"`
	ClientIDs            []kernel.ClientID  `json:"client_ids"`
}

// CreateUser provisions a new user in the caller's company
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*user.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, user.ErrUserAlreadyExists().WithDetail("email", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	accessible := req.AccessibleCompanyIDs
	if len(accessible) == 0 {
		// Every user can at least operate within their home company
		accessible = []kernel.CompanyID{req.CompanyID}
	}

	newUser := &user.User{
		ID:                   kernel.NewUserID(uuid.NewString()),
		Email:                req.Email,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		PasswordHash:         string(hash),
		RoleID:               req.RoleID,
		CompanyID:            req.CompanyID,
		AccessibleCompanyIDs: accessible,
		ClientIDs:            req.ClientIDs,
		ActiveCompanyID:      req.CompanyID,
		Status:               user.UserStatusActive,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}

	return newUser, nil
}

// GetUserByID retrieves a user by id
func (s *UserService) GetUserByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	account, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return account, nil
}

// ListCompanyUsers retrieves the users of a company with pagination
func (s *UserService) ListCompanyUsers(ctx context.Context, companyID kernel.CompanyID, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	users, err := s.userRepo.ListByCompany(ctx, companyID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list users", errx.TypeInternal)
	}
	return users, nil
}

// SuspendUser marks a user suspended
func (s *UserService) SuspendUser(ctx context.Context, id kernel.UserID) error {
	account, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	account.Status = user.UserStatusSuspended
	if err := s.userRepo.Update(ctx, account); err != nil {
		return errx.Wrap(err, "failed to suspend user", errx.TypeInternal)
	}
	return nil
}
