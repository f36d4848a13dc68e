package userdata

import (
	"log/slog"
	"math"
	"sync"

	"filmdb/internal/domain"
)

const keyRatings = "user-ratings"

// Rating bounds; values outside are clamped, never rejected
const (
	MinRating = 1
	MaxRating = 10
)

// Ratings maps content keys to an integer rating in [1,10]. Absence means
// unrated. Keys use the composite (id, media type) identity so a movie and a
// show sharing a numeric id never collide.
type Ratings struct {
	storage domain.Storage
	logger  *slog.Logger
	writer  *storeWriter

	mu      sync.RWMutex
	ratings map[string]int
	loaded  bool
}

func NewRatings(storage domain.Storage, logger *slog.Logger) *Ratings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ratings{
		storage: storage,
		logger:  logger,
		writer:  newStoreWriter(keyRatings, storage, logger),
		ratings: make(map[string]int),
	}
}

// Load hydrates the mapping from storage
func (r *Ratings) Load() {
	ratings := make(map[string]int)
	ok, err := r.storage.Get(keyRatings, &ratings)
	if err != nil {
		r.logger.Error("failed to load ratings", "error", err)
	}

	r.mu.Lock()
	if ok {
		r.ratings = ratings
	}
	r.loaded = true
	r.mu.Unlock()
}

// Loaded reports whether hydration has completed
func (r *Ratings) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Set stores a rating for the item, clamped to [1,10]
func (r *Ratings) Set(id int, mediaType domain.MediaType, rating int) {
	if rating < MinRating {
		rating = MinRating
	}
	if rating > MaxRating {
		rating = MaxRating
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratings[domain.Key{ID: id, Type: mediaType}.String()] = rating
	r.persistLocked()
}

// Unset removes the item's rating, returning it to unrated
func (r *Ratings) Unset(id int, mediaType domain.MediaType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ratings, domain.Key{ID: id, Type: mediaType}.String())
	r.persistLocked()
}

// Get returns the stored rating, or ok=false if the item is unrated
func (r *Ratings) Get(id int, mediaType domain.MediaType) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rating, ok := r.ratings[domain.Key{ID: id, Type: mediaType}.String()]
	return rating, ok
}

// Count returns the number of rated items
func (r *Ratings) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ratings)
}

// Average returns the mean of all ratings rounded to one decimal,
// or 0 when nothing is rated (a defined value, not an error).
func (r *Ratings) Average() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.ratings) == 0 {
		return 0
	}
	sum := 0
	for _, rating := range r.ratings {
		sum += rating
	}
	mean := float64(sum) / float64(len(r.ratings))
	return math.Round(mean*10) / 10
}

func (r *Ratings) persistLocked() {
	snapshot := make(map[string]int, len(r.ratings))
	for k, v := range r.ratings {
		snapshot[k] = v
	}
	r.writer.dispatch(snapshot)
}

// Flush waits for outstanding write-throughs (shutdown path)
func (r *Ratings) Flush() { r.writer.flush() }
