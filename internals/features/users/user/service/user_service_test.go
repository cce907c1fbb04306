package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/users/user/dto"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/store"
	"tahfidz_backend/internals/testkit"
)

func ptr[T any](v T) *T { return &v }

func newService(env *testkit.Env) *UserService {
	return NewUserService(env.Tables, env.Audit, env.Log)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	env := testkit.NewEnv(t)
	admin := env.User(t, constants.RoleAdmin, "admin")
	env.User(t, constants.RoleAsatidz, "ustadz1")
	svc := newService(env)

	req := dto.CreateUserRequest{Username: "ustadz1", Nama: "Ustadz Lain", Password: "password123", Role: constants.RoleAsatidz}
	_, err := svc.Create(env.Ctx, testkit.ActorOf(admin), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, helper.ErrDuplicate))

	var fe *helper.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "username", fe.Field)

	n, err := env.Tables.Users.Count(env.Ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestCreate_HashesPassword(t *testing.T) {
	env := testkit.NewEnv(t)
	admin := env.User(t, constants.RoleAdmin, "admin")
	svc := newService(env)

	u, err := svc.Create(env.Ctx, testkit.ActorOf(admin), dto.CreateUserRequest{
		Username: "wali9", Nama: "Wali Baru", Password: "password123", Role: constants.RoleWaliSantri,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.True(t, CheckPassword(u.PasswordHash, "password123"))
	assert.True(t, u.IsActive)
}

func TestUpdate_RehashesPassword(t *testing.T) {
	env := testkit.NewEnv(t)
	admin := env.User(t, constants.RoleAdmin, "admin")
	target := env.User(t, constants.RoleAsatidz, "ustadz1")
	svc := newService(env)

	_, err := svc.Update(env.Ctx, testkit.ActorOf(admin), target.ID, dto.UpdateUserRequest{Password: ptr("passwordbaru")})
	require.NoError(t, err)

	stored, err := env.Tables.Users.Get(env.Ctx, target.ID)
	require.NoError(t, err)
	assert.NotEqual(t, target.PasswordHash, stored.PasswordHash)
	assert.True(t, CheckPassword(stored.PasswordHash, "passwordbaru"))
	assert.False(t, CheckPassword(stored.PasswordHash, testkit.Password))
}

func TestUpdate_KeepsPasswordWhenOmitted(t *testing.T) {
	env := testkit.NewEnv(t)
	admin := env.User(t, constants.RoleAdmin, "admin")
	target := env.User(t, constants.RoleAsatidz, "ustadz1")
	svc := newService(env)

	updated, err := svc.Update(env.Ctx, testkit.ActorOf(admin), target.ID, dto.UpdateUserRequest{Nama: ptr("Ustadz Ganti")})
	require.NoError(t, err)
	assert.Equal(t, "Ustadz Ganti", updated.Nama)

	stored, err := env.Tables.Users.Get(env.Ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, CheckPassword(stored.PasswordHash, testkit.Password))
}

func TestUpdate_DuplicateUsername(t *testing.T) {
	env := testkit.NewEnv(t)
	admin := env.User(t, constants.RoleAdmin, "admin")
	env.User(t, constants.RoleAsatidz, "ustadz1")
	other := env.User(t, constants.RoleAsatidz, "ustadz2")
	svc := newService(env)

	_, err := svc.Update(env.Ctx, testkit.ActorOf(admin), other.ID, dto.UpdateUserRequest{Username: ptr("ustadz1")})
	assert.True(t, errors.Is(err, helper.ErrDuplicate))
}

func TestUpdate_RoleChangeGuards(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := newService(env)
	actor := testkit.ActorOf(w.Admin)

	_, err := svc.Update(env.Ctx, actor, w.Ustadz1.ID, dto.UpdateUserRequest{Role: ptr(constants.RoleWaliSantri)})
	assert.True(t, errors.Is(err, helper.ErrInvalidState), "pembina halaqoh")

	_, err = svc.Update(env.Ctx, actor, w.Wali1.ID, dto.UpdateUserRequest{Role: ptr(constants.RoleAsatidz)})
	assert.True(t, errors.Is(err, helper.ErrInvalidState), "wali santri")

	_, err = svc.Update(env.Ctx, actor, w.Admin.ID, dto.UpdateUserRequest{IsActive: ptr(false)})
	assert.True(t, errors.Is(err, helper.ErrInvalidState), "nonaktifkan diri sendiri")
}

func TestDelete_Guards(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := newService(env)
	actor := testkit.ActorOf(w.Admin)

	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{"pembina halaqoh", func() error { return svc.Delete(env.Ctx, actor, w.Ustadz1.ID) }, helper.ErrInUse},
		{"wali santri", func() error { return svc.Delete(env.Ctx, actor, w.Wali2.ID) }, helper.ErrInUse},
		{"akun sendiri", func() error { return svc.Delete(env.Ctx, actor, w.Admin.ID) }, helper.ErrInvalidState},
		{"tidak ada", func() error { return svc.Delete(env.Ctx, actor, w.Santri1.ID) }, store.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	n, err := env.Tables.Users.Count(env.Ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestDelete_FreeUser(t *testing.T) {
	env := testkit.NewEnv(t)
	admin := env.User(t, constants.RoleAdmin, "admin")
	free := env.User(t, constants.RoleWaliSantri, "wali_lepas")
	svc := newService(env)

	require.NoError(t, svc.Delete(env.Ctx, testkit.ActorOf(admin), free.ID))
	_, err := env.Tables.Users.Get(env.Ctx, free.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListAsatidz_OnlyActiveAsatidz(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := newService(env)

	_, err := svc.Update(env.Ctx, testkit.ActorOf(w.Admin), w.Ustadz2.ID, dto.UpdateUserRequest{IsActive: ptr(false)})
	require.NoError(t, err)

	rows, err := svc.ListAsatidz(env.Ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, w.Ustadz1.ID, rows[0].ID)
	assert.Equal(t, constants.RoleAsatidz, rows[0].Role)
}
