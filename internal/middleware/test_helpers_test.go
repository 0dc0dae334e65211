package middleware

import (
	"testing"

	"github.com/amadeuszklimaszewski/imageboard/internal/config"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"
	"github.com/amadeuszklimaszewski/imageboard/internal/testutils"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.InitConfig("")

	gdb := testutils.SetupDB(t)
	service.ClearCache()
	t.Cleanup(service.ClearCache)
	service.InitializeSettings()
	return gdb
}
