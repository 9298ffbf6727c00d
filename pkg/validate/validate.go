package validate

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// DefaultRealName accepts 2 to 4 Hangul syllables.
var DefaultRealName = regexp.MustCompile(`^\p{Hangul}{2,4}$`)

type CustomValidator struct {
	validator  *validator.Validate
	realName   *regexp.Regexp
	orgDomains []string
}

type Option func(cv *CustomValidator)

func WithRealNamePattern(re *regexp.Regexp) Option {
	return func(cv *CustomValidator) {
		if re != nil {
			cv.realName = re
		}
	}
}

// WithOrgDomains restricts orgemail to the given domains. Without it any
// address passes.
func WithOrgDomains(domains ...string) Option {
	return func(cv *CustomValidator) {
		for _, d := range domains {
			if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
				cv.orgDomains = append(cv.orgDomains, d)
			}
		}
	}
}

func NewCustomValidator(opts ...Option) *CustomValidator {
	cv := &CustomValidator{
		validator: validator.New(),
		realName:  DefaultRealName,
	}
	for _, opt := range opts {
		opt(cv)
	}
	_ = cv.validator.RegisterValidation("realname", func(fl validator.FieldLevel) bool {
		return cv.realName.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = cv.validator.RegisterValidation("orgemail", func(fl validator.FieldLevel) bool {
		return cv.orgEmail(fl.Field().String())
	})
	return cv
}

func (cv *CustomValidator) orgEmail(email string) bool {
	if len(cv.orgDomains) == 0 {
		return true
	}
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, d := range cv.orgDomains {
		if domain == d {
			return true
		}
	}
	return false
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
