package domain

import (
	"context"
	"errors"
)

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	UserID int64
	Email  string
}

type Service interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	VerifyToken(token string) (Claims, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
)
