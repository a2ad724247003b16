// Package bind provides form bind and validation helpers for handlers
package bind

import (
	"mime"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "einwurf/internal/platform/errors"
	"einwurf/internal/platform/logger"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc

	fOnce   sync.Once
	formDec *form.Decoder
)

// Init initializes the singleton validator with english translations
// field names in messages prefer the form tag, then toml/yaml tags
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(tagName)

		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerShortOneOf(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"form", "toml", "yaml"} {
		tag := fld.Tag.Get(key)
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return fld.Name
}

func decoder() *form.Decoder {
	fOnce.Do(func() { formDec = form.NewDecoder() })
	return formDec
}

// FormOptions controls parsing behavior
type FormOptions struct {
	MaxBytes int64 // default 64KiB
}

func defaultFormOptions() FormOptions {
	return FormOptions{MaxBytes: 64 << 10}
}

const formMediaType = "application/x-www-form-urlencoded"

// ParseForm decodes an urlencoded POST body into T, validates it, and maps failures to project errors
func ParseForm[T any](r *http.Request, opts ...FormOptions) (T, error) {
	var zero T
	o := defaultFormOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt != formMediaType {
		return zero, perr.FormErrf("unsupported content type %q, want %s", r.Header.Get("Content-Type"), formMediaType)
	}
	if o.MaxBytes > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	}
	if err := r.ParseForm(); err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeForm, "invalid form body")
	}

	var dst T
	if err := decoder().Decode(&dst, r.PostForm); err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeForm, "invalid form values")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Struct validates v and maps the first failure to an ErrorCodeValidation error carrying the field
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Internalf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fieldPath(fe), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// fieldPath renders the namespace without the root struct name, e.g. notion.page_id
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func registerShortOneOf(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("oneof", trans,
		func(ut ut.Translator) error {
			return ut.Add("oneof", "{0} has an unknown value; want one of [{1}]", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("oneof", fe.Field(), fe.Param())
			return msg
		},
	)
}
