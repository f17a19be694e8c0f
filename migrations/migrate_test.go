// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	// goose сам ходит в DB; первая же операция падает
	mock.ExpectQuery(".*").WillReturnError(errors.New("database is locked"))
	mock.ExpectExec(".*").WillReturnError(errors.New("database is locked"))

	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestEmbeddedMigrations_CreateKVStore(t *testing.T) {
	data, err := fs.ReadFile(embedMigrations, "00001_create_kv_store.sql")
	if err != nil {
		t.Fatalf("expected embedded migration, got: %v", err)
	}

	body := string(data)
	for _, want := range []string{"-- +goose Up", "CREATE TABLE IF NOT EXISTS kv_store", "key        TEXT PRIMARY KEY", "-- +goose Down"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected migration to contain %q", want)
		}
	}
}
