package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/domains/user/repository"
	"sidehustle-backend/internal/shared/apperr"
	"sidehustle-backend/pkg/jwt"
)

// MsgInvalidCredentials là body message mà login client đang parse
const MsgInvalidCredentials = "Invalid credentials"

// TokenManager issues and validates bearer tokens
type TokenManager interface {
	GenerateAccessToken(userID int64, email string) (string, error)
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// userService implement Service interface
type userService struct {
	repo       repository.Repository
	tokens     TokenManager
	bcryptCost int
	now        func() time.Time
}

// NewUserService inject repository và token manager qua constructor
func NewUserService(repo repository.Repository, tokens TokenManager) Service {
	return &userService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới và cấp token
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	// 1. VALIDATE INPUT
	req.Email = model.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	// 2. BUSINESS RULE: email, username, A-Number unique
	conflicts, err := s.findConflicts(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, apperr.Validation(conflicts)
	}

	// 3. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.FieldError("password", model.MsgPasswordTooLong)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. PERSIST
	newUser := &model.User{
		Username:     req.Username,
		ANumber:      req.ANumber,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(passwordHash),
		DateJoined:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		// Race với request khác: unique constraint ở DB vẫn bắt được
		if field, msg, ok := model.ConflictField(err); ok {
			return nil, apperr.FieldError(field, msg)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 5. ISSUE TOKEN
	resp, err := s.authResponse(newUser)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", newUser.ID).Str("username", newUser.Username).Msg("User registered")
	return resp, nil
}

func (s *userService) findConflicts(ctx context.Context, req model.RegisterRequest) (map[string][]string, error) {
	checks := []struct {
		field string
		msg   string
		check func(context.Context, string) (bool, error)
		value string
	}{
		{"username", model.MsgUsernameTaken, s.repo.ExistsByUsername, req.Username},
		{"email", model.MsgEmailTaken, s.repo.ExistsByEmail, req.Email},
		{"ANumber", model.MsgANumberTaken, s.repo.ExistsByANumber, req.ANumber},
	}

	conflicts := make(map[string][]string)
	for _, c := range checks {
		exists, err := c.check(ctx, c.value)
		if err != nil {
			return nil, fmt.Errorf("check %s exists: %w", c.field, err)
		}
		if exists {
			conflicts[c.field] = []string{c.msg}
		}
	}
	return conflicts, nil
}

// Login xác thực user bằng email + password
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	invalid := apperr.Authentication(MsgInvalidCredentials, model.ErrInvalidCredentials)

	if req.Email == "" || req.Password == "" {
		return nil, invalid
	}

	u, err := s.repo.FindByEmail(ctx, model.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Không expose "email not found"
			return nil, invalid
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	// bcrypt.CompareHashAndPassword is constant-time
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalid
	}

	return s.authResponse(u)
}

// Authenticate resolve bearer token thành user hiện tại
func (s *userService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, apperr.Authentication("", fmt.Errorf("%w: %v", model.ErrInvalidToken, err))
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, apperr.Authentication("", model.ErrInvalidToken)
		}
		return nil, fmt.Errorf("load token user: %w", err)
	}
	return u, nil
}

func (s *userService) authResponse(u *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &model.AuthResponse{User: u.ToDTO(), Token: token}, nil
}

// ========================================
// USERS
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID int64) (*model.UserDTO, error) {
	return s.GetUser(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.UserDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	return dtos, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*model.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, apperr.NotFound(err)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	dto := u.ToDTO()
	return &dto, nil
}
