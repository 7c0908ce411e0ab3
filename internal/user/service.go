package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/user"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidCreds     = errors.New("invalid credentials")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrEmailRequired    = errors.New("email is required")
	ErrUserNotFound     = errors.New("user not found")
)

type Service struct {
	repo      UserRepository
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewService(repo UserRepository, jwtSecret []byte, jwtTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

type Registration struct {
	Login    string
	Password string
	Email    string
	Phone    string
	Address  string
}

func (s *Service) Register(ctx context.Context, reg Registration) (*user.User, error) {
	if len(reg.Password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if strings.TrimSpace(reg.Email) == "" {
		return nil, ErrEmailRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &user.User{
		Login:        reg.Login,
		PasswordHash: string(hash),
		Email:        reg.Email,
		Phone:        reg.Phone,
		Address:      reg.Address,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (string, error) {
	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCreds
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   login,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type ProfileUpdate struct {
	Email   string
	Phone   string
	Address string
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if strings.TrimSpace(upd.Email) == "" {
		return nil, ErrEmailRequired
	}
	u.Email = upd.Email
	u.Phone = upd.Phone
	u.Address = upd.Address
	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
