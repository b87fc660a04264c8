package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/brightsales/atlas/internal/auth/domain"
	"github.com/brightsales/atlas/internal/config"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	secret []byte
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("auth.service"),
		secret: []byte(p.Config.AuthJWTSecret),
	}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	var user domain.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResult{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.LoginResult{}, err
	}

	return domain.LoginResult{Token: token, User: user}, nil
}

func (s *Service) issueToken(user domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	return token.SignedString(s.secret)
}

func (s *Service) VerifyToken(raw string) (domain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	tokenClaims, ok := parsed.Claims.(*claims)
	if !ok {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(tokenClaims.Subject, 10, 64)
	if err != nil {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	return domain.Claims{UserID: userID, Email: tokenClaims.Email}, nil
}
