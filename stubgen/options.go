package stubgen

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/stubkit/stubgen/classify"
)

// ErrInvalidRequest is returned for requests that cannot be resolved at
// all. Problems with individual stubs are reported as diagnostics instead.
var ErrInvalidRequest = errors.New("invalid generation request")

// Options configures resolution.
type Options struct {
	// Strict forces strict mode on every stub in addition to stubs that
	// request it themselves.
	Strict bool

	// Workers bounds how many stubs resolve concurrently.
	// Default: GOMAXPROCS.
	Workers int

	// Logger receives per-stub summaries and diagnostics.
	// Default: a no-op logger.
	Logger *zap.Logger

	// Classifier overrides type classification. When nil a memoizing
	// classifier of CacheSize entries is used.
	Classifier classify.Classifier

	// CacheSize is the classification cache size. Negative disables
	// caching. Default: classify.DefaultMemoSize.
	CacheSize int
}

// applyOptionDefaults applies default values to Options.
func applyOptionDefaults(opts *Options) (*Options, error) {
	// Make a copy to avoid mutating the input
	var result Options
	if opts != nil {
		result = *opts
	}

	if result.Workers <= 0 {
		result.Workers = runtime.GOMAXPROCS(0)
	}
	if result.Logger == nil {
		result.Logger = zap.NewNop()
	}
	if result.Classifier == nil {
		if result.CacheSize < 0 {
			result.Classifier = classify.Default
		} else {
			memo, err := classify.NewMemo(result.CacheSize, nil)
			if err != nil {
				return nil, errors.Wrap(err, "creating classification cache")
			}
			result.Classifier = memo
		}
	}

	return &result, nil
}
