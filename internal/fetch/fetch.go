package fetch

import (
	"net/http"
	"time"

	"github.com/okra-platform/abiparse/internal/imports"
	"github.com/rs/zerolog"
)

// Options configures the default fetcher stack
type Options struct {
	// Root is the directory relative paths are resolved against
	Root string

	// CacheSize is the number of schemas kept in memory
	CacheSize int

	// Timeout bounds a single http download
	Timeout time.Duration

	// S3 enables s3:// uris when set
	S3 *S3Config

	Logger zerolog.Logger
}

// New builds a cached fetcher for file paths, http(s) urls and, when configured, s3 uris
func New(opts Options) (imports.Fetcher, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	mux := NewMux(NewFile(opts.Root))
	httpFetcher := NewHTTP(&http.Client{Timeout: timeout})
	mux.Handle("http", httpFetcher)
	mux.Handle("https", httpFetcher)

	if opts.S3 != nil {
		s3, err := NewS3(*opts.S3)
		if err != nil {
			return nil, err
		}
		mux.Handle("s3", s3)
	}

	return NewCache(mux, opts.CacheSize, opts.Logger)
}
