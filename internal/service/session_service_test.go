package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/pkg/util"
)

type fakeAdminRepo struct {
	mu     sync.Mutex
	seq    int
	admins map[string]domain.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]domain.AdminUser)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		// Mirrors ON CONFLICT DO NOTHING: no row comes back.
		if existing.Email == admin.Email {
			return pgx.ErrNoRows
		}
	}
	r.seq++
	admin.ID = fmt.Sprintf("admin-%d", r.seq)
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	r.admins[admin.ID] = *admin
	return nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &admin, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.Email == email {
			copied := admin
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
		BootstrapAdminEmail:   "admin@gympoint.com",
		BootstrapAdminPass:    "s3cr3t",
		BootstrapAdminName:    "Administrator",
	}
}

func TestEnsureDefaultAdminIdempotent(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewSessionService(testAuthConfig(), repo, zap.NewNop())

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	admin, err := repo.GetByEmail(context.Background(), "admin@gympoint.com")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", admin.Name)
	assert.Len(t, repo.admins, 1)
}

func TestLogin(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewSessionService(testAuthConfig(), repo, zap.NewNop())
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	admin, token, exp, err := svc.Login(context.Background(), "admin@gympoint.com", "s3cr3t")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewSessionService(testAuthConfig(), repo, zap.NewNop())
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	_, _, _, err := svc.Login(context.Background(), "admin@gympoint.com", "wrong")
	assert.True(t, util.IsCode(err, util.CodeUnauthorized))

	_, _, _, err = svc.Login(context.Background(), "nobody@gympoint.com", "s3cr3t")
	assert.True(t, util.IsCode(err, util.CodeUnauthorized))
}
