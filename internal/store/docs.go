package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/agropuls/backend-quote/internal/obs"
)

// Docs reads and writes JSON documents over a KV store on a best-effort
// basis. A failed or malformed read reports absent so the caller falls
// back to defaults; a failed write is dropped and the in-memory state
// stays authoritative for the session. No store failure ever reaches
// the caller as an error.
type Docs struct {
	KV  KV
	Log zerolog.Logger
}

// LoadRaw returns the raw bytes stored under key, or absent.
func (d Docs) LoadRaw(ctx context.Context, key string) ([]byte, bool) {
	if d.KV == nil {
		return nil, false
	}
	val, ok, err := d.KV.Get(ctx, key)
	if err != nil {
		d.swallow("get", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return []byte(val), true
}

// Load unmarshals the document stored under key into dst. It reports
// whether dst was populated; absence and malformed payloads are treated
// identically.
func (d Docs) Load(ctx context.Context, key string, dst any) bool {
	raw, ok := d.LoadRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		d.swallow("decode", key, err)
		return false
	}
	return true
}

// Save serialises v as JSON and stores it under key, best effort.
func (d Docs) Save(ctx context.Context, key string, v any) {
	if d.KV == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		d.swallow("encode", key, err)
		return
	}
	if err := d.KV.Set(ctx, key, string(data)); err != nil {
		d.swallow("set", key, err)
	}
}

// Remove deletes the document stored under key, best effort.
func (d Docs) Remove(ctx context.Context, key string) {
	if d.KV == nil {
		return
	}
	if err := d.KV.Del(ctx, key); err != nil {
		d.swallow("del", key, err)
	}
}

func (d Docs) swallow(op, key string, err error) {
	d.Log.Warn().Err(err).Str("op", op).Str("key", key).Msg("store operation dropped")
	if obs.PersistenceFailuresTotal != nil {
		obs.PersistenceFailuresTotal.WithLabelValues(op).Inc()
	}
}
