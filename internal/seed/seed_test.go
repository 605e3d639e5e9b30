package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	referencedomain "github.com/smallbiznis/plantdesk/internal/reference/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnsureReferenceDataRunsOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_once?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&referencedomain.Recipe{}, &referencedomain.ServiceType{}))

	require.NoError(t, EnsureReferenceData(db))
	require.NoError(t, EnsureReferenceData(db))

	var recipes, serviceTypes int64
	require.NoError(t, db.Model(&referencedomain.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&referencedomain.ServiceType{}).Count(&serviceTypes).Error)
	assert.Equal(t, int64(len(defaultRecipes)), recipes)
	assert.Equal(t, int64(len(defaultServiceTypes)), serviceTypes)
}

func TestEnsureReferenceDataRequiresHandle(t *testing.T) {
	assert.Error(t, EnsureReferenceData(nil))
}
