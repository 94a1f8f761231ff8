package authz

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Project{}))
	return db
}

func TestAuthorize(t *testing.T) {
	row := &models.Project{RegistrationNumber: "R1"}

	require.NoError(t, Authorize("R1", row))
	require.ErrorIs(t, Authorize("R2", row), ErrForbidden)
}

func TestLoadOwned(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()

	project := models.Project{RegistrationNumber: "R1", Title: "thesis"}
	require.NoError(t, db.Create(&project).Error)

	var got models.Project
	require.NoError(t, LoadOwned(ctx, db, &got, project.ID, "R1"))
	require.Equal(t, "thesis", got.Title)

	var other models.Project
	require.ErrorIs(t, LoadOwned(ctx, db, &other, project.ID, "R2"), ErrForbidden)

	var missing models.Project
	require.ErrorIs(t, LoadOwned(ctx, db, &missing, 9999, "R1"), ErrNotFound)
}
