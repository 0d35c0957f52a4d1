// Package storage provides durable single-document persistence.
//
// A Document is one named blob of JSON. The lead store writes its entire
// collection to a Document after every mutation, so backends only need
// whole-value read and overwrite.
package storage

import "context"

// Well-known document keys.
const (
	DefaultLeadsKey = "salesListData"
	UsageKey        = "apiUsageData"
)

// Document is a named blob in durable storage.
type Document interface {
	// Read returns the stored bytes, or (nil, nil) when nothing has been
	// written yet.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored bytes.
	Write(ctx context.Context, data []byte) error
}
