package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

var (
	ErrFragmentsUnavailable = errors.New("fragment asset unavailable")
	ErrMalformedFragment    = errors.New("malformed fragment")
)

// Load outcomes reported to the LoadRecorder.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeCached  = "cached"
)

// FragmentStore maps "<chapter>:<verse>" keys to fragments in source order.
type FragmentStore map[string][]entities.Fragment

// LoadRecorder observes fragment load attempts.
type LoadRecorder interface {
	ObserveLoad(source, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveLoad(string, string) {}

// FragmentOption configures a FragmentRepository.
type FragmentOption func(*FragmentRepository)

// WithCache keeps the parsed asset after the first successful read.
func WithCache(enabled bool) FragmentOption {
	return func(r *FragmentRepository) { r.cache = enabled }
}

// WithRecorder reports every load attempt to rec.
func WithRecorder(rec LoadRecorder) FragmentOption {
	return func(r *FragmentRepository) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// FragmentRepository loads the verse fragment asset from a primary source,
// falling back to a secondary one when the primary read or parse fails.
type FragmentRepository struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
	recorder LoadRecorder
	validate *validator.Validate
	cache    bool

	group singleflight.Group
	mu    sync.RWMutex
	store FragmentStore
}

// NewFragmentRepository creates a repository. fallback may be nil.
func NewFragmentRepository(logger *zap.Logger, primary, fallback Source, opts ...FragmentOption) *FragmentRepository {
	r := &FragmentRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		recorder: nopRecorder{},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the fragments of one chapter keyed by "<chapter>:<verse>".
// It returns ErrFragmentsUnavailable when neither source yields a valid asset.
func (r *FragmentRepository) Load(ctx context.Context, chapter int) (FragmentStore, error) {
	store, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	return filterChapter(store, chapter), nil
}

func (r *FragmentRepository) loadAll(ctx context.Context) (FragmentStore, error) {
	if r.cache {
		r.mu.RLock()
		store := r.store
		r.mu.RUnlock()
		if store != nil {
			r.recorder.ObserveLoad("memory", OutcomeCached)
			return store, nil
		}
	}

	v, err, _ := r.group.Do("fragments", func() (any, error) {
		store, err := r.readAll(ctx)
		if err != nil {
			return nil, err
		}
		if r.cache {
			r.mu.Lock()
			r.store = store
			r.mu.Unlock()
		}
		return store, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(FragmentStore), nil
}

func (r *FragmentRepository) readAll(ctx context.Context) (FragmentStore, error) {
	store, primaryErr := r.readFrom(ctx, r.primary)
	if primaryErr == nil {
		return store, nil
	}

	r.logger.Warn("primary fragment source failed",
		zap.String("source", r.primary.Name()),
		zap.Error(primaryErr),
	)

	if r.fallback == nil {
		return nil, errors.Join(ErrFragmentsUnavailable, primaryErr)
	}

	store, fallbackErr := r.readFrom(ctx, r.fallback)
	if fallbackErr != nil {
		r.logger.Error("fallback fragment source failed",
			zap.String("source", r.fallback.Name()),
			zap.Error(fallbackErr),
		)
		return nil, errors.Join(ErrFragmentsUnavailable, primaryErr, fallbackErr)
	}

	r.logger.Info("fragments loaded from fallback source",
		zap.String("source", r.fallback.Name()),
		zap.Int("keys", len(store)),
	)

	return store, nil
}

func (r *FragmentRepository) readFrom(ctx context.Context, src Source) (FragmentStore, error) {
	data, err := src.Read(ctx)
	if err != nil {
		r.recorder.ObserveLoad(src.Name(), OutcomeFailure)
		return nil, err
	}

	store, err := r.parse(data)
	if err != nil {
		r.recorder.ObserveLoad(src.Name(), OutcomeFailure)
		return nil, fmt.Errorf("%s source: %w", src.Name(), err)
	}

	r.recorder.ObserveLoad(src.Name(), OutcomeSuccess)
	r.logger.Debug("fragments loaded",
		zap.String("source", src.Name()),
		zap.Int("keys", len(store)),
	)

	return store, nil
}

func (r *FragmentRepository) parse(data []byte) (FragmentStore, error) {
	var store FragmentStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("unmarshal fragments: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("unmarshal fragments: %w: empty document", ErrMalformedFragment)
	}

	for key, fragments := range store {
		for i := range fragments {
			if err := r.validate.Struct(fragments[i]); err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %w", ErrMalformedFragment, key, i, err)
			}
		}
	}

	return store, nil
}

// filterChapter keeps the keys of one chapter. The match is on the
// "<chapter>:" string prefix, so chapter 1 never picks up "10:1".
func filterChapter(store FragmentStore, chapter int) FragmentStore {
	prefix := entities.ChapterPrefix(chapter)

	result := make(FragmentStore)
	for key, fragments := range store {
		if strings.HasPrefix(key, prefix) {
			result[key] = slices.Clone(fragments)
		}
	}

	return result
}
