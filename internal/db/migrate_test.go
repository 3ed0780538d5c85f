package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMigrateSQLiteAdminAccountColumns(t *testing.T) {
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	for _, column := range []string{"username", "password_hash", "failed_login_attempts", "locked_until", "last_password_change"} {
		if !conn.Migrator().HasColumn("admin_accounts", column) {
			t.Fatalf("admin_accounts missing column %s", column)
		}
	}
	for _, table := range []string{"testimonials", "company_infos", "contact_messages"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestMigrateSQLiteBackfillsExistingAdminTable(t *testing.T) {
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}

	if errExec := conn.Exec(`
		CREATE TABLE admin_accounts (
			id integer primary key autoincrement,
			username text not null unique,
			password_hash text not null,
			created_at datetime,
			updated_at datetime
		)
	`).Error; errExec != nil {
		t.Fatalf("create legacy admin_accounts table: %v", errExec)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	for _, column := range []string{"failed_login_attempts", "locked_until", "last_password_change"} {
		if !conn.Migrator().HasColumn("admin_accounts", column) {
			t.Fatalf("admin_accounts missing column %s after backfill migration", column)
		}
	}
}

func TestMigrateRejectsNilConnection(t *testing.T) {
	if errMigrate := Migrate(nil); errMigrate == nil {
		t.Fatalf("expected error for nil connection")
	}
}
