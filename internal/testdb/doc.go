// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// Each test runs inside a transaction that is rolled back when it finishes,
// so tests can run in parallel against one database without cleanup:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    decks := postgres.NewPostgresDeckStore(tx, nil)
//	    // ...
//	})
//
// Tests are skipped when DATABASE_URL (or LINGODECK_TEST_DB_URL) is unset.
package testdb
