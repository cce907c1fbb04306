package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	authModel "tahfidz_backend/internals/features/users/auth/model"
	userModel "tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/store"
	"tahfidz_backend/internals/testkit"
)

func newAuth(t *testing.T) (*testkit.Env, *AuthService) {
	t.Helper()
	env := testkit.NewEnv(t)
	svc := NewAuthService(env.Tables, NewTokenIssuer("secret-test", time.Hour), env.Audit, env.Log)
	return env, svc
}

type snapshot struct {
	users     []userModel.UserModel
	logs      int64
	blacklist int64
}

func takeSnapshot(t *testing.T, env *testkit.Env) snapshot {
	t.Helper()
	users, _, err := env.Tables.Users.List(env.Ctx, store.Query{})
	require.NoError(t, err)
	logs, err := env.Tables.LogAktivitas.Count(env.Ctx)
	require.NoError(t, err)
	bl, err := env.Tables.TokenBlacklist.Count(env.Ctx)
	require.NoError(t, err)
	return snapshot{users: users, logs: logs, blacklist: bl}
}

func TestLogin_FailuresMutateNothing(t *testing.T) {
	env, svc := newAuth(t)
	env.User(t, constants.RoleAdmin, "admin")
	inactive := env.User(t, constants.RoleAsatidz, "nonaktif")
	inactive.IsActive = false
	_, err := env.Tables.Users.Update(env.Ctx, inactive)
	require.NoError(t, err)

	before := takeSnapshot(t, env)

	cases := []struct {
		name, username, password string
	}{
		{"unknown user", "siapa", testkit.Password},
		{"inactive user", "nonaktif", testkit.Password},
		{"wrong password", "admin", "salah-total"},
		{"empty password", "admin", ""},
		{"empty username", "", testkit.Password},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(env.Ctx, tc.username, tc.password)
			assert.ErrorIs(t, err, helper.ErrInvalidCredentials)
			assert.Equal(t, before, takeSnapshot(t, env))
		})
	}
}

func TestLogin_SuccessIssuesTokenAndAudits(t *testing.T) {
	env, svc := newAuth(t)
	admin := env.User(t, constants.RoleAdmin, "admin")

	res, err := svc.Login(env.Ctx, "  ADMIN ", testkit.Password)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, admin.ID, res.User.ID)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	claims, sub, err := svc.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, sub)
	assert.Equal(t, constants.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	logs, _, err := env.Tables.LogAktivitas.List(env.Ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "login", logs[0].Aksi)
	assert.Equal(t, admin.ID, logs[0].UserID)
}

func TestVerifyToken(t *testing.T) {
	env, svc := newAuth(t)
	u := env.User(t, constants.RoleAsatidz, "ustadz")
	res, err := svc.Login(env.Ctx, "ustadz", testkit.Password)
	require.NoError(t, err)

	actor, err := svc.VerifyToken(env.Ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, actor.ID)
	assert.Equal(t, constants.RoleAsatidz, actor.Role)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken(env.Ctx, "bukan.jwt.valid")
		assert.ErrorIs(t, err, helper.ErrInvalidCredentials)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenIssuer("lain", time.Hour)
		raw, _, err := other.Issue(u)
		require.NoError(t, err)
		_, err = svc.VerifyToken(env.Ctx, raw)
		assert.ErrorIs(t, err, helper.ErrInvalidCredentials)
	})

	t.Run("alg none", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.VerifyToken(env.Ctx, raw)
		assert.ErrorIs(t, err, helper.ErrInvalidCredentials)
	})

	t.Run("expired", func(t *testing.T) {
		issuer := NewTokenIssuer("secret-test", time.Hour)
		issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		raw, _, err := issuer.Issue(u)
		require.NoError(t, err)
		_, err = svc.VerifyToken(env.Ctx, raw)
		assert.ErrorIs(t, err, helper.ErrInvalidCredentials)
	})

	t.Run("deactivated user", func(t *testing.T) {
		cur, err := env.Tables.Users.Get(env.Ctx, u.ID)
		require.NoError(t, err)
		cur.IsActive = false
		_, err = env.Tables.Users.Update(env.Ctx, cur)
		require.NoError(t, err)

		_, err = svc.VerifyToken(env.Ctx, res.Token)
		assert.ErrorIs(t, err, helper.ErrForbidden)
	})
}

func TestLogout_BlacklistsToken(t *testing.T) {
	env, svc := newAuth(t)
	env.User(t, constants.RoleWaliSantri, "wali")
	res, err := svc.Login(env.Ctx, "wali", testkit.Password)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(env.Ctx, res.Token))
	// logout kedua tetap sukses
	require.NoError(t, svc.Logout(env.Ctx, res.Token))

	n, err := env.Tables.TokenBlacklist.Count(env.Ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = svc.VerifyToken(env.Ctx, res.Token)
	assert.ErrorIs(t, err, helper.ErrInvalidCredentials)

	assert.ErrorIs(t, svc.Logout(env.Ctx, "rusak"), helper.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	env, svc := newAuth(t)
	u := env.User(t, constants.RoleAsatidz, "ustadz")
	actor := testkit.ActorOf(u)

	err := svc.ChangePassword(env.Ctx, actor, "bukan-password", "passwordbaru1")
	assert.ErrorIs(t, err, helper.ErrInvalidCredentials)

	err = svc.ChangePassword(env.Ctx, actor, testkit.Password, testkit.Password)
	assert.ErrorIs(t, err, helper.ErrInvalidState)

	require.NoError(t, svc.ChangePassword(env.Ctx, actor, testkit.Password, "passwordbaru1"))

	_, err = svc.Login(env.Ctx, "ustadz", testkit.Password)
	assert.ErrorIs(t, err, helper.ErrInvalidCredentials)
	_, err = svc.Login(env.Ctx, "ustadz", "passwordbaru1")
	assert.NoError(t, err)
}

func TestCleanupBlacklist(t *testing.T) {
	env, svc := newAuth(t)
	now := time.Now().UTC()
	for i, exp := range []time.Time{now.Add(-30 * 24 * time.Hour), now.Add(-10 * 24 * time.Hour), now.Add(time.Hour)} {
		_, err := env.Tables.TokenBlacklist.Create(env.Ctx, authModel.TokenBlacklist{
			Token:     string(rune('a' + i)),
			ExpiredAt: exp,
		})
		require.NoError(t, err)
	}

	n, err := svc.CleanupBlacklist(env.Ctx, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := env.Tables.TokenBlacklist.Count(env.Ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, left)
}
