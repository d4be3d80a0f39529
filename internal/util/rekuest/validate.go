package rekuest

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	idTranslations "github.com/go-playground/validator/v10/translations/id"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/util"
	"emisi.dev/backend/internal/util/i18n"
)

var Validate = util.NewValidator()

var weekdayMessages = map[string]string{
	"en": "{0} must be a weekday name from Monday to Sunday",
	"id": "{0} harus berupa nama hari dari Monday sampai Sunday",
}

func init() {
	var err error
	entr, _ := i18n.UT.GetTranslator("en")
	err = enTranslations.RegisterDefaultTranslations(Validate, entr)
	if err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	idtr, _ := i18n.UT.GetTranslator("id")
	err = idTranslations.RegisterDefaultTranslations(Validate, idtr)
	if err != nil {
		log.Warn().Err(err).Str("locale", "id").Msg("could not register translation")
	}

	translators := map[string]ut.Translator{
		"en": entr,
		"id": idtr,
	}

	for l, t := range translators {
		err = Validate.RegisterTranslation("caseinsensitiveoneof", t, func(ut ut.Translator) error {
			return nil
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("oneof", fe.Field(), fe.Param())
			return t
		})
		if err != nil {
			log.Warn().Err(err).Str("locale", l).Msg("could not register translation for function caseinsensitiveoneof")
		}

		message := weekdayMessages[l]
		err = Validate.RegisterTranslation("weekday", t, func(ut ut.Translator) error {
			return ut.Add("weekday", message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("weekday", fe.Field())
			return t
		})
		if err != nil {
			log.Warn().Err(err).Str("locale", l).Msg("could not register translation for function weekday")
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(utt ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	trans := []*ErrorResponse{}

	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(utt),
		})
	}

	return trans
}

func validateVar(ctx *fiber.Ctx, s any, tag string) []*ErrorResponse {
	tr := TranslatorFromCtx(ctx)
	err := Validate.Var(s, tag)
	if err != nil {
		errs := err.(validator.ValidationErrors)
		return translate(tr, errs)
	}
	return nil
}

func validateStruct(ctx *fiber.Ctx, s any) []*ErrorResponse {
	tr := TranslatorFromCtx(ctx)
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(tr, errs)
	}
	return nil
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. If the validation passed it will write the unmarshalled body
// to dest and return a nil, otherwise it will return an error. Notice that dest shall
// always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return emerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(ctx, dest); err != nil {
		return emerr.NewInvalidViolations(err)
	}

	return nil
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	if err := validateStruct(ctx, dest); err != nil {
		return emerr.NewInvalidViolations(err)
	}

	return nil
}

func ValidVar(ctx *fiber.Ctx, field any, tag string) error {
	if err := validateVar(ctx, field, tag); err != nil {
		return emerr.NewInvalidViolations(err)
	}

	return nil
}

// ValidFilter reads the comma separated dashboard filter from the query string.
func ValidFilter(ctx *fiber.Ctx) (*types.DashboardFilter, error) {
	filter := types.ParseDashboardFilter(
		ctx.Query("days"),
		ctx.Query("faculties"),
		ctx.Query("modes"),
		ctx.Query("devices"),
		ctx.Query("categories"),
	)
	if err := ValidStruct(ctx, filter); err != nil {
		return nil, err
	}
	filter.Devices = lowerAll(filter.Devices)
	filter.Categories = lowerAll(filter.Categories)
	return filter, nil
}

func lowerAll(s []string) []string {
	for i := range s {
		s[i] = strings.ToLower(s[i])
	}
	return s
}
