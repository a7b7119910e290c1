package service

import (
	"context"

	"sidehustle-backend/internal/domains/user/model"
)

// Service định nghĩa business logic layer contract (Identity Provider)
type Service interface {
	// Authentication
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)

	// Users
	GetProfile(ctx context.Context, userID int64) (*model.UserDTO, error)
	ListUsers(ctx context.Context) ([]model.UserDTO, error)
	GetUser(ctx context.Context, id int64) (*model.UserDTO, error)
}
