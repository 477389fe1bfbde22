package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratioai/backend/internal/models"
	"github.com/ratioai/backend/internal/testhelpers"
)

func TestMigratedSchema(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	user := models.User{
		Username:     "tester",
		Email:        "tester@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(&user).Error)
	assert.NotZero(t, user.ID)

	recipe := models.SavedRecipe{
		UserID: user.ID,
		Title:  "Basic Bread",
	}
	require.NoError(t, db.Create(&recipe).Error)
	assert.NotZero(t, recipe.ID)

	var loaded models.SavedRecipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, user.ID, loaded.UserID)
	assert.Empty(t, loaded.Ingredients)
}

func TestMigratedSchemaPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupPostgresDB(t)

	user := models.User{
		Username:     "pgtester",
		Email:        "pgtester@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(&user).Error)
	assert.NotZero(t, user.ID)
}
