package access

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

func TestService_IssueAndValidate(t *testing.T) {
	svc := NewService(Config{Secret: "test-secret", Issuer: "vat-directory"}, newTestLogger())
	require.True(t, svc.Enabled())

	token, err := svc.IssueToken(context.Background(), "frontend", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "frontend", claims.Subject)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestService_ValidateRejects(t *testing.T) {
	issuer := NewService(Config{Secret: "test-secret", Issuer: "vat-directory"}, newTestLogger())
	valid, err := issuer.IssueToken(context.Background(), "frontend", time.Hour)
	require.NoError(t, err)

	expiredSvc := NewService(Config{Secret: "test-secret", Issuer: "vat-directory"}, newTestLogger()).(*service)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.IssueToken(context.Background(), "frontend", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   Service
		token string
	}{
		{name: "empty", svc: issuer, token: " "},
		{name: "garbage", svc: issuer, token: "not.a.jwt"},
		{name: "wrong secret", svc: NewService(Config{Secret: "other", Issuer: "vat-directory"}, newTestLogger()), token: valid},
		{name: "wrong issuer", svc: NewService(Config{Secret: "test-secret", Issuer: "someone-else"}, newTestLogger()), token: valid},
		{name: "expired", svc: issuer, token: expired},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.svc.ValidateToken(context.Background(), tt.token)
			require.True(t, apperrors.IsCode(err, "invalid_token"), "got %v", err)
		})
	}
}

func TestService_Disabled(t *testing.T) {
	t.Parallel()
	svc := NewService(Config{}, newTestLogger())
	require.False(t, svc.Enabled())
	_, err := svc.IssueToken(context.Background(), "frontend", time.Hour)
	require.True(t, apperrors.IsCode(err, "config_error"))
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
