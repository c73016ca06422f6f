package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-user-auth-api/internal/domain/repository/memstore"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

func TestSeedUser(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	hasher := helpers.NewPasswordHasher(bcrypt.MinCost)

	u, created, err := seedUser(ctx, store, hasher, demoEmail, demoPassword)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, u.IsVerified)

	stored, err := store.Users().GetByEmail(ctx, demoEmail)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	ok, err := hasher.Verify(demoPassword, stored.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	again, created, err := seedUser(ctx, store, hasher, demoEmail, demoPassword)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
}
