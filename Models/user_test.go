package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	user := User{Email: "u@test.local"}
	require.NoError(t, user.SetPassword("hunter22"))

	assert.NotEqual(t, []byte("hunter22"), user.Password)
	assert.True(t, user.CheckPassword("hunter22"))
	assert.False(t, user.CheckPassword("hunter2"))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleManager))
	assert.True(t, ValidRole(RoleCashier))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("owner"))
	assert.False(t, ValidRole(""))
}

func TestElevated(t *testing.T) {
	assert.True(t, (&User{Role: RoleManager}).Elevated())
	assert.True(t, (&User{Role: RoleAdmin}).Elevated())
	assert.False(t, (&User{Role: RoleCashier}).Elevated())
}

func TestUserEmailUnique(t *testing.T) {
	db := newTestDB(t)
	seedCashier(t, db, "same@test.local")

	dup := &User{Email: "same@test.local", Role: RoleCashier}
	require.NoError(t, dup.SetPassword("password123"))
	err := db.Create(dup).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}
