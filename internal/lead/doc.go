// Package lead provides the business logic for the sales lead list.
//
// This package is the heart of the application, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// importers, or tests without modification.
//
// # Architecture
//
//   - Records: [Record] is one tracked prospective business contact. New
//     records are built from [Fields]; partial updates use [Patch].
//   - Store: [Store] owns the canonical, insertion-ordered collection and
//     writes the whole collection to a [storage.Document] after every
//     mutation.
//   - Duplicates: [IsDuplicate] decides whether a candidate may be admitted.
//   - Views: [Apply], [GroupByRecency], [GroupByCategory] and [ComputeStats]
//     derive read-only views and never mutate their input.
//
// # Persistence
//
// The store is opened over a single JSON document:
//
//	doc := storage.NewFile(dir, storage.DefaultLeadsKey)
//	store, err := lead.Open(ctx, doc)
//	rec, err := store.Create(ctx, lead.Fields{
//	    CompanyName:   "株式会社サンプル商事",
//	    ContactPerson: "山田太郎",
//	    Industry:      "建築",
//	})
//
// A failed write leaves the in-memory collection untouched and returns a
// [*PersistenceError]; the mutation is not considered committed.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - VAL001-VAL006: Validation errors (required fields, missing columns)
//   - FILE001-FILE005: File errors (size, encoding, empty)
//   - STO001-STO002: Storage errors
//   - LEAD404: Record not found
//   - UPL002-UPL005: Import errors (busy, cancelled, timeout)
//   - PLC001: Places search unavailable
//
// # Audit Logging
//
// Every committed mutation is written to the structured log with an action
// and severity, plus the client IP and user agent carried in the context
// (see [WithRequestInfo]).
package lead
