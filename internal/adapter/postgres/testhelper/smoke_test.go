//go:build integration

package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	var count int
	err := pool.QueryRow(
		context.Background(),
		`SELECT count(*) FROM information_schema.tables
		 WHERE table_name IN ('dict_words', 'dict_root_forms', 'word_catalog_runs')`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("expected catalog tables query to succeed, got error: %v", err)
	}

	if count != 3 {
		t.Fatalf("expected 3 catalog tables, got %d", count)
	}
}
