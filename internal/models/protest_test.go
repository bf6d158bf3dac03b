package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestProtestMigration_BuildsCompoundFeedIndex(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&Organization{}, &Protest{}))

	indexes, err := db.Migrator().GetIndexes(&Protest{})
	require.NoError(t, err)

	// The feed sorts and cursors on (date_time, id); the index must cover both
	// columns in that order.
	for _, idx := range indexes {
		if idx.Name() == "idx_protests_date_time_id" {
			require.Equal(t, []string{"date_time", "id"}, idx.Columns())
			return
		}
	}
	t.Fatalf("idx_protests_date_time_id not found in %d migrated indexes", len(indexes))
}
