package database

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"testing"
	"time"

	"attendance-tracker/config"
	"attendance-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
	}
}

func TestOpenCreatesTables(t *testing.T) {
	db, err := Open(testConfig(t))
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Attendance{}))
}

func TestOpenSeedsAdminOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.CreateAdmin = true
	cfg.AdminUsername = "root"
	cfg.AdminEmail = "root@test.com"
	cfg.AdminPassword = "adminpass"

	_, err := Open(cfg)
	require.NoError(t, err)
	db, err := Open(cfg) // second start must not fail on the unique username
	require.NoError(t, err)

	var admins []models.User
	require.NoError(t, db.Where("role = ?", "admin").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "root", admins[0].Username)
	assert.True(t, admins[0].CheckPassword("adminpass"))
}

func TestOpenAdminNeedsPassword(t *testing.T) {
	cfg := testConfig(t)
	cfg.CreateAdmin = true

	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestDialectErrors(t *testing.T) {
	_, err := dialect(&config.Config{DBDriver: "postgres"})
	assert.Error(t, err)

	_, err = dialect(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?cache=shared&_foreign_keys=on", sqliteDSN("a.db?cache=shared"))
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := newGormLogger(log.New(&buf, "", 0))
	query := func() (string, int64) { return "SELECT * FROM users WHERE id = 9", 0 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), query, gorm.ErrInvalidData)
	assert.Contains(t, buf.String(), "SELECT * FROM users WHERE id = 9")
}
