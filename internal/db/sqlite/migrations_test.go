package sqlite

import (
	"context"
	"testing"
)

func TestTicketTablesExistAfterMigrations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	var tables []string
	err := client.db.SelectContext(ctx, &tables, "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}

	found := make(map[string]struct{}, len(tables))
	for _, name := range tables {
		found[name] = struct{}{}
	}
	for _, required := range []string{"user_report_tickets", "user_suggestion_tickets"} {
		if _, ok := found[required]; !ok {
			t.Fatalf("required table %q not found in %v", required, tables)
		}
	}
}

func TestPendingIndexesExistAfterMigrations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	var indexes []string
	err := client.db.SelectContext(ctx, &indexes, "SELECT name FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%'")
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}

	found := make(map[string]struct{}, len(indexes))
	for _, name := range indexes {
		found[name] = struct{}{}
	}
	for _, required := range []string{"idx_report_tickets_pending", "idx_suggestion_tickets_pending"} {
		if _, ok := found[required]; !ok {
			t.Fatalf("required index %q not found in %v", required, indexes)
		}
	}
}
