package database

import (
	"testing"

	"blogicum/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DB{
		DbHOST:     "db",
		DbPORT:     "5433",
		DbUSER:     "blog",
		DbPASSWORD: "secret",
		DbNAME:     "blogicum",
		DbSSLMODE:  "disable",
	})

	assert.Equal(t, "host=db port=5433 user=blog password=secret dbname=blogicum sslmode=disable", dsn)
}

func TestHealthCheck_NotInitialized(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
	assert.Error(t, (&DB{}).HealthCheck())
}

func TestRunMigrations_MissingFile(t *testing.T) {
	db := &DB{}
	err := db.RunMigrations("does/not/exist.sql")
	assert.ErrorContains(t, err, "файл миграций не найден")
}
