package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
)

func TestServiceRepository_CRUD(t *testing.T) {
	repo := NewServiceRepository(newTestDB(t))
	ctx := context.Background()

	svc := &model.Service{Name: "Sherwani", Price: "₹8000+", Desc: "Wedding wear", Category: "Ethnic"}
	require.NoError(t, repo.Create(ctx, svc))
	require.NotEmpty(t, svc.ID)

	svc.Price = "₹9000+"
	svc.Desc = ""
	require.NoError(t, repo.Update(ctx, svc))

	got, err := repo.FindByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "₹9000+", got.Price)
	assert.Equal(t, "", got.Desc)
	assert.Equal(t, "Sherwani", got.Name)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, svc.ID))
	assert.ErrorIs(t, repo.Delete(ctx, svc.ID), apperrors.ErrServiceNotFound)

	_, err = repo.FindByID(ctx, svc.ID)
	assert.ErrorIs(t, err, apperrors.ErrServiceNotFound)
}

func TestServiceRepository_Upsert(t *testing.T) {
	repo := NewServiceRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &model.Service{ID: "service_0", Name: "Blazer", Price: "₹3000+"}))
	require.NoError(t, repo.Upsert(ctx, &model.Service{ID: "service_0", Name: "Blazer", Price: "₹3500+", Desc: "Lined"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "₹3500+", list[0].Price)
	assert.Equal(t, "Lined", list[0].Desc)
}
