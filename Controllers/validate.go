package Controllers

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	entranslations.RegisterDefaultTranslations(validate, trans)
}

// validationMessages turns validator errors into readable field messages.
func validationMessages(err error) []string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fe.Translate(trans))
	}
	return messages
}

// badRequest is the standard shape for failed payload validation.
func validationError(err error) map[string]interface{} {
	return map[string]interface{}{
		"error":   "Validation failed",
		"message": validationMessages(err),
	}
}
