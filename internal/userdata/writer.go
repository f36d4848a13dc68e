package userdata

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"filmdb/internal/domain"
)

// storeWriter serializes the fire-and-forget write-throughs for one storage
// key. Each dispatched snapshot carries a sequence number and a write only
// lands while no newer snapshot has been written, so the latest in-memory
// state reaches storage no matter how the goroutines are scheduled.
type storeWriter struct {
	storageKey string
	storage    domain.Storage
	logger     *slog.Logger

	wg      sync.WaitGroup
	seq     atomic.Uint64
	writeMu sync.Mutex
	written uint64
}

func newStoreWriter(storageKey string, storage domain.Storage, logger *slog.Logger) *storeWriter {
	return &storeWriter{storageKey: storageKey, storage: storage, logger: logger}
}

// dispatch persists the snapshot in the background. A write failure is
// logged, not surfaced, and never retried.
func (w *storeWriter) dispatch(snapshot interface{}) {
	seq := w.seq.Add(1)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.writeMu.Lock()
		defer w.writeMu.Unlock()
		if seq <= w.written {
			// a newer snapshot already landed
			return
		}
		w.written = seq
		if err := w.storage.Set(w.storageKey, snapshot); err != nil {
			w.logger.Error("write-through failed", "key", w.storageKey, "error", err)
		}
	}()
}

// flush blocks until every dispatched write has completed or been skipped
func (w *storeWriter) flush() { w.wg.Wait() }
