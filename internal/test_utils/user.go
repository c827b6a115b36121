package test_utils

import (
	"database/sql"
	"testing"
	"time"
)

// TestUserId is the id used by CreateTestUser and expected by repository tests.
const TestUserId = "00000000-0000-0000-0000-000000000001"

// CreateTestUser inserts a user row so that rows referencing app_user
// satisfy their foreign key. Returns the user id.
func CreateTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO app_user (id, username, display_name, created_at) VALUES ($1, $2, $3, $4)`,
		TestUserId, "test_user", "Test User", time.Now().Unix(),
	)
	if err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}
	return TestUserId
}
