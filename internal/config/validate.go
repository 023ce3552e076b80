package config

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// ErrConflictingModes indicates issues-only and issues-too were both set.
	ErrConflictingModes = errors.New("issues-only and issues-too are mutually exclusive")

	// ErrMissingAPIKey indicates classification is enabled without an API key.
	ErrMissingAPIKey = errors.New("an API key is required for query classification (set --api-key or OPENAI_API_KEY, or pass --disable-classifications)")

	// ErrMissingQuery indicates a search was requested without a query.
	ErrMissingQuery = errors.New("a search query is required")
)

type validatorSvc struct {
	validate   *validator.Validate
	translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validatorSvc
)

// settingsValidator returns the validator singleton with english messages
// that name fields by their setting keys.
func settingsValidator() *validatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &validatorSvc{validate: v, translator: trans}
	})
	return vSvc
}

// ValidateSettings checks value ranges and conflicting configurations shared
// by all commands.
func ValidateSettings(s *Settings) error {
	svc := settingsValidator()
	if err := svc.validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fe.Translate(svc.translator))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if s.IssuesOnly && s.IssuesToo {
		return ErrConflictingModes
	}

	return validateAuth(&s.Auth)
}

// ValidateSearchSettings checks the settings of a one-shot search.
func ValidateSearchSettings(s *Settings) error {
	if err := ValidateSettings(s); err != nil {
		return err
	}
	if s.Query == "" {
		return ErrMissingQuery
	}
	if s.Classify() && s.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ValidateServeSettings checks the settings of the MCP server.
func ValidateServeSettings(s *Settings) error {
	if err := ValidateSettings(s); err != nil {
		return err
	}
	if !s.DisableClassifications && s.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func validateAuth(a *AuthSettings) error {
	hasBasicCreds := a.Basic.Username != "" || a.Basic.Password != ""
	hasAPIKeys := len(a.APIKeys) > 0

	switch a.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if a.Basic.Username == "" || a.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + a.Type)
	}
	return nil
}
