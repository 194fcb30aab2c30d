//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovenline/bakeops/internal/testutil"
)

// TestMain sets up one shared MongoDB container for every integration test in
// this package instead of paying the container startup cost per test.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

// setupTestDBFromSharedContainer connects to the shared container with a
// unique database name for test isolation.
func setupTestDBFromSharedContainer(t *testing.T) *MongoDB {
	dbName := testutil.SanitizeDBName(t.Name())
	db, err := NewMongoDB(testutil.GetSharedContainerURI(), dbName)
	require.NoError(t, err)
	return db
}
