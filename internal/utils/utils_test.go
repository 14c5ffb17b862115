package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	ctx := SetUserContext(context.Background(), 42, "user@example.com", RoleStoreOwner)

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "user@example.com", GetUserEmailFromContext(ctx))
	assert.Equal(t, RoleStoreOwner, GetUserRoleFromContext(ctx))
}

func TestUserContext_Empty(t *testing.T) {
	ctx := context.Background()

	id, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, "", GetUserEmailFromContext(ctx))
	assert.Equal(t, "", GetUserRoleFromContext(ctx))
}

func TestToUint(t *testing.T) {
	n, err := ToUint("123")
	assert.NoError(t, err)
	assert.Equal(t, uint(123), n)

	_, err = ToUint("abc")
	assert.Error(t, err)
}

func TestPtrHelpers(t *testing.T) {
	s := "hello"
	assert.Equal(t, &s, StrPtr("hello"))
	assert.Equal(t, "hello", PtrString(&s))
	assert.Equal(t, "", PtrString(nil))

	var i int32 = 7
	assert.Equal(t, int32(7), PtrInt32(&i))
	assert.Equal(t, int32(0), PtrInt32(nil))
}
