package bindgen

import (
	"github.com/go-playground/validator/v10"
	"github.com/wippyai/jsbindgen/errors"
)

// validate is shared; validator caches struct metadata per type.
var validate = validator.New()

// Feature is an engine capability enabled for the component
type Feature string

const (
	FeatureStdio  Feature = "stdio"
	FeatureClocks Feature = "clocks"
	FeatureRandom Feature = "random"
	FeatureHTTP   Feature = "http"
	// FeatureFetchEvent serves wasi:http/incoming-handler from the engine's
	// built-in fetch event, so no export binding is generated for it.
	FeatureFetchEvent Feature = "fetch-event"
)

// Encoding is the string encoding used across the boundary
type Encoding string

const (
	EncodingUTF8         Encoding = "utf8"
	EncodingUTF16        Encoding = "utf16"
	EncodingCompactUTF16 Encoding = "compact-utf16"
)

// fetchEventExport is the export key prefix skipped under FeatureFetchEvent
const fetchEventExport = "wasi:http/incoming-handler@0.2."

// Options configures one generation run
type Options struct {
	Features       []Feature `validate:"dive,oneof=stdio clocks random http fetch-event"`
	StringEncoding Encoding  `validate:"omitempty,oneof=utf8 utf16 compact-utf16"`
}

// Validate checks field values and rejects encodings other than UTF-8
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "invalid options")
	}
	if o.StringEncoding != "" && o.StringEncoding != EncodingUTF8 {
		return errors.New(errors.PhaseConfig, errors.KindUnsupported).
			Value(o.StringEncoding).
			Detail("string encoding %s is not supported, only utf8", o.StringEncoding).
			Build()
	}
	return nil
}

// Has reports whether feature f is enabled
func (o Options) Has(f Feature) bool {
	for _, enabled := range o.Features {
		if enabled == f {
			return true
		}
	}
	return false
}
