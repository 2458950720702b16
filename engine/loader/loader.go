// Package loader decodes the board and piece textures. Sources are decoded in parallel on a
// bounded worker pool; a source that fails to decode is replaced by a generated checker pattern
// so the visualizer always has something to sample.
package loader

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-chessboard/common"
)

// FallbackFunc produces the texture used when a source cannot be decoded.
type FallbackFunc func(name string) common.TextureStagingData

// DefaultFallback is a 64x64 light/dark checker with eight cells per edge.
func DefaultFallback(name string) common.TextureStagingData {
	return common.CheckerTexture(64, 8, [4]uint8{230, 230, 230, 255}, [4]uint8{120, 120, 120, 255})
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu *sync.Mutex

	pool     worker.DynamicWorkerPool
	workers  int
	fallback FallbackFunc
	logger   *log.Logger

	textureCache map[string]common.TextureStagingData
}

// Loader decodes and caches textures by name.
type Loader interface {
	// Load decodes every source not already cached, in parallel, and caches the results.
	// Failed sources are cached as the fallback texture and reported in the returned error.
	//
	// Parameters:
	//   - sources: the textures to decode
	//
	// Returns:
	//   - map[string]common.TextureStagingData: the texture for every requested name
	//   - error: the joined decode failures, nil if all succeeded
	Load(sources ...common.TextureSource) (map[string]common.TextureStagingData, error)

	// Get retrieves a cached texture by name.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - common.TextureStagingData: the cached texture
	//   - bool: false if name was never loaded
	Get(name string) (common.TextureStagingData, bool)

	// Textures returns a copy of the texture cache.
	Textures() map[string]common.TextureStagingData

	// Close stops the worker pool. Load must not be called afterwards.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader with its worker pool running.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the ready loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:           &sync.Mutex{},
		workers:      4,
		fallback:     DefaultFallback,
		logger:       log.Default(),
		textureCache: make(map[string]common.TextureStagingData),
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 16, 1*time.Second)
	return l
}

func (l *loader) Load(sources ...common.TextureSource) (map[string]common.TextureStagingData, error) {
	result := make(map[string]common.TextureStagingData, len(sources))

	var (
		wg      sync.WaitGroup
		resMu   sync.Mutex
		errs    []error
		pending []common.TextureSource
	)

	l.mu.Lock()
	for _, src := range sources {
		if cached, ok := l.textureCache[src.Name]; ok {
			result[src.Name] = cached
			continue
		}
		pending = append(pending, src)
	}
	l.mu.Unlock()

	// The WaitGroup is the barrier; pool.Wait only returns once workers go idle.
	for i, src := range pending {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: src.Name,
			Do: func() (any, error) {
				defer wg.Done()
				data, err := src.Decode()
				if err == nil && !data.Valid() {
					err = fmt.Errorf("texture %q decoded to an empty image", src.Name)
				}
				if err != nil {
					l.logger.Printf("[Loader] %v, using fallback", err)
					data = l.fallback(src.Name)
				}

				resMu.Lock()
				defer resMu.Unlock()
				result[src.Name] = data
				if err != nil {
					errs = append(errs, err)
				}
				return data, err
			},
		})
	}
	wg.Wait()

	l.mu.Lock()
	for _, src := range pending {
		l.textureCache[src.Name] = result[src.Name]
	}
	l.mu.Unlock()

	return result, errors.Join(errs...)
}

func (l *loader) Get(name string) (common.TextureStagingData, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.textureCache[name]
	return t, ok
}

func (l *loader) Textures() map[string]common.TextureStagingData {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]common.TextureStagingData, len(l.textureCache))
	for k, v := range l.textureCache {
		out[k] = v
	}
	return out
}

func (l *loader) Close() {
	l.pool.Stop()
}
