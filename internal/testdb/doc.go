// Package testdb provides database helpers for tests.
//
// By default every call to GetTestDBWithT returns a fresh, fully migrated
// in-memory SQLite database, so tests are isolated without any external
// service. Setting BOARD_TEST_DATABASE_URL to a PostgreSQL URL runs the
// same tests against PostgreSQL instead; use WithTx there to keep each
// test's writes inside a transaction that is rolled back afterwards.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        columns := sqlstore.NewColumnStore(tx, db.Dialect, nil)
//	        ...
//	    })
//	}
package testdb
