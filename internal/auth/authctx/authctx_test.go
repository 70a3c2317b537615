package authctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	_, ok = UserID(WithUserID(context.Background(), ""))
	assert.False(t, ok)

	userID, ok := UserID(WithUserID(context.Background(), "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestUserID_IgnoresPlainStringKeys(t *testing.T) {
	ctx := context.WithValue(context.Background(), "userID", "user-1") //nolint:staticcheck
	_, ok := UserID(ctx)
	assert.False(t, ok)
}
