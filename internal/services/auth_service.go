package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shramik-saathi/backend/internal/models"
	pgrepo "github.com/shramik-saathi/backend/internal/repositories/postgres"
	"github.com/shramik-saathi/backend/internal/utils"
)

type RegisterRequest struct {
	Name      string   `json:"name" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=8"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	WorkTypes []string `json:"work_types"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (token string, user *models.User, err error)
}

type authService struct {
	users     pgrepo.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users pgrepo.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &authService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	const op = "AuthService.Register"

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name, email, and password are required", nil)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing user", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "email already registered", nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
		WorkTypes:    req.WorkTypes,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "AuthService.Login"

	if email == "" || password == "" {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", err)
		}
		return "", nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", err)
	}

	token, err := utils.MintToken(s.jwtSecret, u.ID, string(u.Role), s.tokenTTL)
	if err != nil {
		return "", nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return token, u, nil
}
