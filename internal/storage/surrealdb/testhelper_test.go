package surrealdb

import (
	"context"
	"testing"

	surreal "github.com/surrealdb/surrealdb.go"

	"github.com/bobmcallan/folio/internal/common"
	testcommon "github.com/bobmcallan/folio/test/common"
)

// testDB returns a connection to a fresh database with the folio tables defined.
func testDB(t *testing.T) *surreal.DB {
	t.Helper()

	sdb := testcommon.StartSurrealDB(t)
	ctx := context.Background()

	db, err := surreal.New(sdb.Address())
	if err != nil {
		t.Fatalf("connect to SurrealDB: %v", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": "root",
		"pass": "root",
	}); err != nil {
		t.Fatalf("sign in to SurrealDB: %v", err)
	}

	if err := db.Use(ctx, testcommon.TestNamespace, testcommon.DatabaseName(t, "t")); err != nil {
		t.Fatalf("select namespace/database: %v", err)
	}
	if err := defineTables(ctx, db); err != nil {
		t.Fatalf("define tables: %v", err)
	}

	t.Cleanup(func() {
		db.Close(context.Background())
	})

	return db
}

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}
