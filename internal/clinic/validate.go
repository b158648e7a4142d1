package clinic

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	ptBRLocale "github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"

	"github.com/Flyrell/physiotrack/internal/protocol"
)

const (
	notBlankTag  = "notblank"
	frequencyTag = "frequency"
)

// ValidationError lists the invalid fields of a request, keyed by their JSON
// name, with a Portuguese message each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// newValidator builds a validator that reports JSON field names and speaks
// Portuguese.
func newValidator() (*validator.Validate, ut.Translator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	locale := ptBRLocale.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := ptBRTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register translations: %w", err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(notBlankTag, notBlank); err != nil {
		return nil, nil, err
	}
	if err := v.RegisterValidation(frequencyTag, validFrequency); err != nil {
		return nil, nil, err
	}

	custom := map[string]string{
		notBlankTag:  "{0} não pode ficar em branco",
		frequencyTag: "{0} não é uma frequência reconhecida",
	}
	for tag, msg := range custom {
		msg := msg
		register := func(t ut.Translator) error { return t.Add(tag, msg, true) }
		translate := func(t ut.Translator, fe validator.FieldError) string {
			s, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return s
		}
		if err := v.RegisterTranslation(tag, trans, register, translate); err != nil {
			return nil, nil, err
		}
	}

	return v, trans, nil
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func validFrequency(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && protocol.ValidFrequency(s)
}

// check validates v and converts validator errors into a *ValidationError.
func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fe.Translate(s.trans)
	}
	return &ValidationError{Fields: fields}
}

// fieldPath drops the top-level struct name: "NewProtocol.exercises[0].name"
// becomes "exercises[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
