package access

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

// Service issues and validates HS256 bearer tokens. With no secret configured
// the guard is disabled.
type Service interface {
	Enabled() bool
	IssueToken(ctx context.Context, subject string, ttl time.Duration) (string, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
}

type service struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the access guard.
func NewService(cfg Config, logger *slog.Logger) Service {
	return &service{cfg: cfg, logger: logger.With("component", "access.service"), now: time.Now}
}

func (s *service) Enabled() bool {
	return strings.TrimSpace(s.cfg.Secret) != ""
}

func (s *service) IssueToken(_ context.Context, subject string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", apperrors.Wrap("config_error", "access secret is not configured", nil)
	}
	if strings.TrimSpace(subject) == "" {
		return "", apperrors.Wrap("invalid_input", "subject cannot be empty", nil)
	}
	if ttl <= 0 {
		return "", apperrors.Wrap("invalid_input", "ttl must be positive", nil)
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.Wrap("access_error", "failed to sign token", err)
	}
	return signed, nil
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap("invalid_token", "token missing", nil)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap("invalid_token", "token invalid", nil)
	}
	return Claims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
