package validator

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dvdk01/urlwatch/internal/config"
)

type ConfigValidator struct {
	validate *validator.Validate
}

func New() *ConfigValidator {
	v := validator.New()
	v.RegisterValidation("http_protocol", validateHTTPProtocol) //nolint:errcheck
	v.RegisterValidation("cell_phone", validateCellPhone)       //nolint:errcheck
	return &ConfigValidator{
		validate: v,
	}
}

func validateHTTPProtocol(fl validator.FieldLevel) bool {
	urlStr := fl.Field().String()
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return strings.HasPrefix(parsedURL.Scheme, "http")
}

// validateCellPhone accepts the SMS destination format the notifier supports:
// +1 followed by exactly ten digits.
func validateCellPhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if len(phone) != 12 || !strings.HasPrefix(phone, "+1") {
		return false
	}
	for _, r := range phone[2:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (v *ConfigValidator) Validate(cfg config.Config) error {
	return v.validate.Struct(cfg)
}
