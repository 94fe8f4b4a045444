// Package database provides SQLite connectivity for the device timeline store.
//
// This package manages:
//   - Database connection with optional WAL mode
//   - Schema migrations loaded from an fs.FS (embedded by the migrations package)
//   - Connection lifecycle and health checks
//
// The collection itself lives in a single key-value row (see the device
// package); this package only knows about connections and schema.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path, WALMode: true})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
