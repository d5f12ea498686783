package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &model.User{Email: "zoya@example.com", Name: "Zoya", Role: model.RoleCustomer, PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zoya", byID.Name)

	byEmail, err := repo.FindByEmail(ctx, "zoya@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepository_UpdateRoleTouchesOnlyRole(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &model.User{
		Email:        "imran@example.com",
		Name:         "Imran",
		Phone:        "9876500000",
		Role:         model.RoleCustomer,
		PasswordHash: "x",
		Measurements: model.Measurements{"chest": "40"},
	}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdateRole(ctx, user.ID, model.RoleTailor))
	require.NoError(t, repo.UpdateRole(ctx, user.ID, model.RoleCustomer))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, got.Role)
	assert.Equal(t, "Imran", got.Name)
	assert.Equal(t, "9876500000", got.Phone)
	assert.Equal(t, model.Measurements{"chest": "40"}, got.Measurements)
	assert.False(t, got.EmailVerified)
}

func TestUserRepository_ProfileMeasurementsAndVerification(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &model.User{Email: "sara@example.com", Name: "Sara", Role: model.RoleCustomer, PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdateProfile(ctx, user.ID, "Sara Khan", "+919800000001"))
	require.NoError(t, repo.UpdateMeasurements(ctx, user.ID, model.Measurements{"waist": "32", "inseam": "30"}))
	require.NoError(t, repo.SetEmailVerified(ctx, user.ID))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sara Khan", got.Name)
	assert.Equal(t, "+919800000001", got.Phone)
	assert.Equal(t, "32", got.Measurements["waist"])
	assert.True(t, got.EmailVerified)
}

func TestUserRepository_ListAndCountByRole(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	for _, u := range []*model.User{
		{Email: "a@example.com", Name: "Bilal", Role: model.RoleTailor, PasswordHash: "x"},
		{Email: "b@example.com", Name: "Arjun", Role: model.RoleTailor, PasswordHash: "x"},
		{Email: "c@example.com", Name: "Meera", Role: model.RoleCustomer, PasswordHash: "x"},
	} {
		require.NoError(t, repo.Create(ctx, u))
	}

	tailors, err := repo.ListByRole(ctx, model.RoleTailor)
	require.NoError(t, err)
	require.Len(t, tailors, 2)
	assert.Equal(t, "Arjun", tailors[0].Name)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	n, err := repo.CountByRole(ctx, model.RoleTailor)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
