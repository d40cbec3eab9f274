package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		u, err := NewUser("Alice.Smith", "s3cretpass", RoleOperator)
		require.NoError(t, err)

		assert.Equal(t, "alice.smith", u.Username)
		assert.Equal(t, UserStatusActive, u.Status)
		assert.NotEqual(t, "s3cretpass", u.PasswordHash)
		assert.True(t, u.VerifyPassword("s3cretpass"))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	t.Run("rejects short usernames", func(t *testing.T) {
		_, err := NewUser("ab", "s3cretpass", RoleViewer)
		assert.Error(t, err)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		_, err := NewUser("alice", "short1", RoleViewer)
		assert.Error(t, err)

		_, err = NewUser("alice", "onlyletters", RoleViewer)
		assert.Error(t, err)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := NewUser("alice", "s3cretpass", Role("superuser"))
		assert.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	u, err := NewUser("bob", "oldpass99", RoleOperator)
	require.NoError(t, err)

	assert.Error(t, u.ChangePassword("wrongpass1", "newpass99"))

	require.NoError(t, u.ChangePassword("oldpass99", "newpass99"))
	assert.True(t, u.VerifyPassword("newpass99"))
	assert.False(t, u.VerifyPassword("oldpass99"))
}

func TestUser_Lockout(t *testing.T) {
	t.Run("locks after repeated failures", func(t *testing.T) {
		u, err := NewUser("carol", "s3cretpass", RoleOperator)
		require.NoError(t, err)

		assert.False(t, u.RecordLoginFailure(3, time.Hour))
		assert.False(t, u.RecordLoginFailure(3, time.Hour))
		assert.True(t, u.RecordLoginFailure(3, time.Hour))

		assert.True(t, u.IsLocked())
		assert.False(t, u.CanLogin())
	})

	t.Run("expired lock allows login again", func(t *testing.T) {
		u, err := NewUser("dave", "s3cretpass", RoleOperator)
		require.NoError(t, err)

		require.NoError(t, u.Lock(time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		assert.False(t, u.IsLocked())
		assert.True(t, u.CanLogin())
	})

	t.Run("unlock resets failed attempts", func(t *testing.T) {
		u, err := NewUser("erin", "s3cretpass", RoleOperator)
		require.NoError(t, err)

		u.RecordLoginFailure(1, time.Hour)
		require.True(t, u.IsLocked())

		require.NoError(t, u.Unlock())
		assert.Equal(t, 0, u.FailedAttempts)
		assert.True(t, u.CanLogin())
	})
}

func TestUser_Roles(t *testing.T) {
	u, err := NewUser("frank", "s3cretpass", RoleViewer)
	require.NoError(t, err)
	assert.False(t, u.CanWrite())

	require.NoError(t, u.SetRole(RoleOperator))
	assert.True(t, u.CanWrite())

	require.NoError(t, u.SetRole(RoleAdmin))
	assert.True(t, u.CanWrite())

	assert.Error(t, u.SetRole(Role("root")))
}

func TestUser_Deactivate(t *testing.T) {
	u, err := NewUser("grace", "s3cretpass", RoleOperator)
	require.NoError(t, err)

	require.NoError(t, u.Deactivate())
	assert.False(t, u.CanLogin())
	assert.Error(t, u.Lock(time.Hour))

	require.NoError(t, u.Activate())
	assert.True(t, u.CanLogin())
}
