package libhours

import (
	"time"

	"github.com/upenn-libraries/libhours/internal/embedded"
	"github.com/upenn-libraries/libhours/internal/sources/libcal"
	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/hours"
	"github.com/upenn-libraries/libhours/pkg/registry"
)

// Option is a function that configures a Client
type Option func(*options) error

// options holds the Client configuration
type options struct {
	config         *registry.Config
	fetcher        hours.Fetcher
	institutionID  int
	namespace      string
	moreInfo       string
	endpoint       string
	timeout        time.Duration
	now            func() time.Time
	registryLoader func() (*registry.Config, error)
}

// defaults returns the default options: the embedded registry and the LibCal fetcher.
func defaults() *options {
	return &options{
		namespace:      constants.DefaultNamespace,
		timeout:        constants.DefaultHTTPTimeout,
		now:            time.Now,
		registryLoader: embedded.Registry,
	}
}

// apply applies options and fills in what they left unset
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.config == nil {
		cfg, err := o.registryLoader()
		if err != nil {
			return nil, err
		}
		o.config = cfg
	}

	if o.fetcher == nil {
		o.fetcher = libcal.New(
			libcal.WithEndpoint(o.endpoint),
			libcal.WithTimeout(o.timeout),
		)
	}
	return o, nil
}

// institution returns the institution override or the registry's own
func (o *options) institution() int {
	if o.institutionID > 0 {
		return o.institutionID
	}
	return o.config.Institution
}

// moreInfoURL returns the override or the registry's "more info" target
func (o *options) moreInfoURL() string {
	if o.moreInfo != "" {
		return o.moreInfo
	}
	return o.config.MoreInfo()
}

// WithRegistry configures the location registry
func WithRegistry(cfg *registry.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.NewValidationError("registry", nil, "is required")
		}
		o.config = cfg
		return nil
	}
}

// WithRegistryFile loads the location registry from a YAML file
func WithRegistryFile(path string) Option {
	return func(o *options) error {
		cfg, err := registry.Load(path)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithFetcher configures the hours source
func WithFetcher(f hours.Fetcher) Option {
	return func(o *options) error {
		if f == nil {
			return errors.NewValidationError("fetcher", nil, "is required")
		}
		o.fetcher = f
		return nil
	}
}

// WithInstitution overrides the registry's institution id
func WithInstitution(id int) Option {
	return func(o *options) error {
		if id < 0 {
			return errors.NewValidationError("institution", id, "must not be negative")
		}
		o.institutionID = id
		return nil
	}
}

// WithEndpoint configures the LibCal endpoint used by the default fetcher
func WithEndpoint(url string) Option {
	return func(o *options) error {
		o.endpoint = url
		return nil
	}
}

// WithTimeout configures the request timeout of the default fetcher
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.NewValidationError("timeout", d, "must not be negative")
		}
		o.timeout = d
		return nil
	}
}

// WithNamespace configures the placeholder marker namespace
func WithNamespace(ns string) Option {
	return func(o *options) error {
		if ns == "" {
			return errors.NewValidationError("namespace", ns, "is required")
		}
		o.namespace = ns
		return nil
	}
}

// WithMoreInfoURL overrides the chart's "more info" target
func WithMoreInfoURL(url string) Option {
	return func(o *options) error {
		o.moreInfo = url
		return nil
	}
}

// WithClock configures the source of the date shown next to the hours.
// It does not change which day's hours are fetched: LibCal always answers
// for today, and requests keep a wall-clock cache buster.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return errors.NewValidationError("clock", nil, "is required")
		}
		o.now = now
		return nil
	}
}
