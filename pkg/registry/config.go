package registry

import (
	stderrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/marker"
)

// Config is the on-disk registry file.
type Config struct {
	Institution int              `yaml:"institution" json:"institution" validate:"gte=0"`
	Chart       []int            `yaml:"chart,omitempty" json:"chart,omitempty" validate:"dive,gt=0"`
	MoreInfoURL string           `yaml:"more_info_url,omitempty" json:"more_info_url,omitempty" validate:"omitempty,url"`
	Locations   []LocationConfig `yaml:"locations" json:"locations" validate:"required,min=1,dive"`
}

// LocationConfig is one location in the registry file.
type LocationConfig struct {
	Key         string       `yaml:"key" json:"key" validate:"required"`
	LID         *int         `yaml:"lid,omitempty" json:"lid,omitempty" validate:"omitempty,gt=0"`
	CalendarURL string       `yaml:"calendar_url" json:"calendar_url" validate:"required,url"`
	DisplayName string       `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Manual      *ManualHours `yaml:"manual,omitempty" json:"manual,omitempty"`
}

// ManualHours supplies resolved data for a location the hours service does not track.
type ManualHours struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Hours string `yaml:"hours" json:"hours" validate:"required"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and validates a registry file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates registry YAML. name is used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.NewParseError("yaml", name, yaml.FormatError(err, false, true), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints, key and lid uniqueness, and that every
// chart id belongs to a registry entry.
func (c *Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, errors.NewValidationError(fieldPath(fe), fe.Value(), describe(fe)))
			}
		} else {
			errs = append(errs, errors.WrapValidation("", err))
		}
	}

	keys := make(map[string]int, len(c.Locations))
	lids := make(map[int]string, len(c.Locations))
	for i, loc := range c.Locations {
		field := fmt.Sprintf("locations[%d]", i)

		if strings.ContainsAny(loc.Key, "- \t\r\n") {
			errs = append(errs, errors.NewValidationError(field+".key", loc.Key, "must not contain '-' or whitespace"))
		}
		if loc.Key == marker.ChartToken {
			errs = append(errs, errors.NewValidationError(field+".key", loc.Key, "is reserved"))
		}
		if prev, ok := keys[loc.Key]; ok && loc.Key != "" {
			errs = append(errs, errors.NewValidationError(field+".key", loc.Key,
				fmt.Sprintf("duplicates locations[%d]", prev)))
		} else {
			keys[loc.Key] = i
		}

		if loc.LID == nil && loc.Manual == nil {
			errs = append(errs, errors.NewValidationError(field, loc.Key, "needs either lid or manual hours"))
		}
		if loc.LID != nil {
			if other, ok := lids[*loc.LID]; ok {
				errs = append(errs, errors.NewValidationError(field+".lid", *loc.LID, "already used by "+other))
			} else {
				lids[*loc.LID] = loc.Key
			}
		}
	}

	for i, id := range c.Chart {
		if _, ok := lids[id]; !ok {
			errs = append(errs, errors.NewValidationError(fmt.Sprintf("chart[%d]", i), id, "no location has this lid"))
		}
	}

	return stderrors.Join(errs...)
}

// NewRegistry builds a fresh Registry for one render pass.
func (c *Config) NewRegistry() (*Registry, error) {
	return New(c.Locations)
}

// MoreInfo returns the configured "more info" target or the default.
func (c *Config) MoreInfo() string {
	if c.MoreInfoURL != "" {
		return c.MoreInfoURL
	}
	return constants.DefaultMoreInfoURL
}

// fieldPath turns "Config.locations[0].key" into "locations[0].key".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a URL"
	case "min":
		return "must have at least " + fe.Param() + " item(s)"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
