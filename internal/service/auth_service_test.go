package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/media"
	"github.com/d60-Lab/blog-platform/pkg/token"
)

func newAuthSvc(env *testEnv) AuthService {
	return NewAuthService(env.users, token.NewMaker("test-secret", time.Hour), media.NewResolver("/media/"))
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuthSvc(env)

	user, err := auth.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email normalized to lowercase")

	result, err := auth.Login(ctx, LoginInput{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuthSvc(env)

	_, err := auth.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, RegisterInput{Username: "alice", Email: "b@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = auth.Register(ctx, RegisterInput{Username: "alice2", Email: "a@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrValidation)
}

// blindUserRepo never sees existing rows, so inserts go straight to the
// unique index — the same window a concurrent registration would hit.
type blindUserRepo struct {
	repository.UserRepository
}

func (blindUserRepo) ExistsUsername(context.Context, string) (bool, error) { return false, nil }
func (blindUserRepo) ExistsEmail(context.Context, string) (bool, error)    { return false, nil }

func TestRegisterDuplicateLosesRaceAsValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := NewAuthService(blindUserRepo{env.users}, token.NewMaker("test-secret", time.Hour), media.NewResolver("/media/"))

	in := RegisterInput{Username: "alice", Email: "a@example.com", Password: "password1"}
	_, err := auth.Register(ctx, in)
	require.NoError(t, err)

	_, err = auth.Register(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuthSvc(env)

	_, err := auth.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = auth.Login(ctx, LoginInput{Username: "nobody", Password: "password1"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
