package sourcerepo

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/utkarsh5026/gitcore/pkg/common"
	"github.com/utkarsh5026/gitcore/pkg/config"
)

type options struct {
	fs             afero.Fs
	logger         *slog.Logger
	clock          common.Clock
	verify         bool
	cacheSize      int
	userConfigPath *string
	overrides      map[string]string
}

// Option configures how a repository is opened or initialised.
type Option func(*options)

// WithFs sets the filesystem. The default is the host filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) { o.fs = fsys }
}

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the clock used to timestamp commits.
func WithClock(c common.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithVerify makes object reads re-hash content and fail on mismatch.
func WithVerify(verify bool) Option {
	return func(o *options) { o.verify = verify }
}

// WithResolverCacheSize bounds the kind cache used when listing trees. A
// non-positive size keeps the store default.
func WithResolverCacheSize(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// WithUserConfigPath overrides the user-level config file. An empty path
// disables the user level.
func WithUserConfigPath(path string) Option {
	return func(o *options) { o.userConfigPath = &path }
}

// WithConfig sets command-line configuration overrides.
func WithConfig(key, value string) Option {
	return func(o *options) {
		if o.overrides == nil {
			o.overrides = make(map[string]string)
		}
		o.overrides[key] = value
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		fs:    afero.NewOsFs(),
		clock: common.SystemClock{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) configOptions() []config.ManagerOption {
	if o.userConfigPath == nil {
		return nil
	}
	return []config.ManagerOption{config.WithUserConfigPath(*o.userConfigPath)}
}
