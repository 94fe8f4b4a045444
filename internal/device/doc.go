// Package device owns the collection of devices on a user's timeline.
//
// A Device is one piece of hardware the user owned, with the year they
// started using it and, optionally, the year they stopped. The collection
// has no persisted order; every presentation derives its own (see the
// timeline package).
//
// # Architecture
//
//	┌────────────────────────────────────────────────────────────┐
//	│                         Registry                           │
//	│  (registry.go) single owner of the in-memory collection    │
//	│   • Add / Update / Delete / Import / Reset                 │
//	│   • RWMutex, deep copies out, snapshot saves               │
//	│   • optional Notifier for change events                    │
//	└───────────────┬──────────────────────────┬─────────────────┘
//	                │                          │
//	                ▼                          ▼
//	┌───────────────────────────┐  ┌───────────────────────────┐
//	│ Repository (repository.go)│  │ Transfer (transfer.go)    │
//	│  • one JSON row in        │  │  • ParseImport validates  │
//	│    kv_store               │  │  • ExportJSON serializes  │
//	└───────────────────────────┘  └───────────────────────────┘
//
// # Usage
//
//	repo := device.NewSQLiteRepository(db.DB)
//	registry := device.NewRegistry(repo)
//	registry.SetLogger(log)
//	if err := registry.Load(ctx); err != nil {
//	    return err
//	}
//
//	d, err := registry.Add(ctx, device.Device{
//	    Name:      "Nokia 3310",
//	    Category:  device.CategorySmartphone,
//	    StartYear: 2000,
//	})
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Devices returned by the
// registry are copies; mutating them does not affect the collection.
package device
