package loader

import (
	"log"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the number of decode workers. Values below 1 are raised to 1.
//
// Parameters:
//   - n: the worker count, 4 by default
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithFallback replaces the checker texture used for sources that fail to decode.
func WithFallback(fn FallbackFunc) LoaderBuilderOption {
	return func(l *loader) {
		if fn != nil {
			l.fallback = fn
		}
	}
}

// WithLogger routes the loader's "[Loader]" warnings to logger.
func WithLogger(logger *log.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTexture pre-populates the cache so Load skips decoding name.
//
// Parameters:
//   - name: the cache key
//   - data: the decoded texture
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithTexture(name string, data common.TextureStagingData) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[name] = data
	}
}
