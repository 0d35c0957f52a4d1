// Package redisdoc stores documents as plain Redis string values.
package redisdoc

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Document is a single Redis key.
type Document struct {
	client redis.Cmdable
	key    string
}

// New returns the document stored under key.
func New(client redis.Cmdable, key string) *Document {
	return &Document{client: client, key: key}
}

// Connect parses a redis:// URL and verifies the server responds.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (d *Document) Read(ctx context.Context) ([]byte, error) {
	data, err := d.client.Get(ctx, d.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", d.key, err)
	}
	return data, nil
}

func (d *Document) Write(ctx context.Context, data []byte) error {
	if err := d.client.Set(ctx, d.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", d.key, err)
	}
	return nil
}
