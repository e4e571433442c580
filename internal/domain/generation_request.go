package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// GenerationRequest holds the user's choices for one deck generation.
type GenerationRequest struct {
	SourceLanguage Language         `json:"source_language"         validate:"required,language"`
	TargetLanguage Language         `json:"target_language"         validate:"required,language,nefield=SourceLanguage"`
	DeckType       DeckType         `json:"deck_type"               validate:"required,deck_type"`
	Proficiency    ProficiencyLevel `json:"proficiency_level"       validate:"required,proficiency"`
	Formality      FormalityLevel   `json:"formality_level"         validate:"required,formality"`
	TopicContext   *string          `json:"topic_context,omitempty" validate:"omitempty,max=200"`
	CardCount      int              `json:"card_count"              validate:"required,card_count"`
}

// UnmarshalJSON decodes a request, accepting card_count either as a JSON
// number or as a numeric string such as "25", the form HTML select values
// are posted in.
func (r *GenerationRequest) UnmarshalJSON(data []byte) error {
	type plain GenerationRequest
	aux := struct {
		*plain
		CardCount json.RawMessage `json:"card_count"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	count, err := parseCardCount(aux.CardCount)
	if err != nil {
		return err
	}
	r.CardCount = count
	return nil
}

// parseCardCount returns 0 for an absent or null value so Normalized can
// apply the default.
func parseCardCount(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("card_count: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("card_count: %q is not a number", s)
		}
		return n, nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("card_count: %w", err)
	}
	return n, nil
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so validation messages match what clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister := func(tag string, fn func(string) bool) {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if err != nil {
			// ALLOW-PANIC: tag registration only fails on programmer error at init
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	mustRegister("language", func(s string) bool { return Language(s).IsValid() })
	mustRegister("deck_type", func(s string) bool { return DeckType(s).IsValid() })
	mustRegister("proficiency", func(s string) bool { return ProficiencyLevel(s).IsValid() })
	mustRegister("formality", func(s string) bool { return FormalityLevel(s).IsValid() })

	err := v.RegisterValidation("card_count", func(fl validator.FieldLevel) bool {
		return IsValidCardCount(int(fl.Field().Int()))
	})
	if err != nil {
		// ALLOW-PANIC: tag registration only fails on programmer error at init
		panic(fmt.Sprintf("register card_count validation: %v", err))
	}

	return v
}

// Normalized returns a copy of the request with defaults applied to unset
// optional settings and the topic trimmed. A blank topic becomes absent.
func (r GenerationRequest) Normalized() GenerationRequest {
	if r.Proficiency == "" {
		r.Proficiency = DefaultProficiency
	}
	if r.Formality == "" {
		r.Formality = DefaultFormality
	}
	if r.CardCount == 0 {
		r.CardCount = DefaultCardCount
	}
	if r.TopicContext != nil {
		topic := strings.TrimSpace(*r.TopicContext)
		if topic == "" {
			r.TopicContext = nil
		} else {
			r.TopicContext = &topic
		}
	}
	return r
}

// Topic returns the topic hint, or "" when none was given.
func (r GenerationRequest) Topic() string {
	if r.TopicContext == nil {
		return ""
	}
	return *r.TopicContext
}

// Validate checks the request against the allowed enumerations and bounds.
// It returns a *ValidationError describing the first failing field.
func (r GenerationRequest) Validate() error {
	err := requestValidator.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError("", err.Error(), ErrValidation)
	}

	fe := fieldErrs[0]
	return NewValidationError(fe.Field(), validationMessage(fe), ErrValidation)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "nefield":
		return "must be different from source_language"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "card_count":
		return fmt.Sprintf("must be one of %v", CardCounts)
	default:
		return fmt.Sprintf("has unsupported value %q", fmt.Sprint(fe.Value()))
	}
}
