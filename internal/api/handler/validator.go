package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/loandesk/loan-api/internal/core/domain"
)

var identityDocumentRe = regexp.MustCompile(`^[A-Za-z]{3}[0-9]{5}$`)

// maxAmountDecimals is the precision amounts are stored and rendered with.
const maxAmountDecimals = 2

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	// amounts are validated as numbers
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("iddoc", func(fl validator.FieldLevel) bool {
		return identityDocumentRe.MatchString(fl.Field().String())
	})

	// the custom type func hides the decimal from field tags, so the scale
	// check runs at struct level
	v.RegisterStructValidation(validateAmountScale, createLoanRequest{}, updateLoanRequest{})

	return &echoValidator{v: v}
}

func validateAmountScale(sl validator.StructLevel) {
	var amount decimal.Decimal
	switch req := sl.Current().Interface().(type) {
	case createLoanRequest:
		amount = req.Amount
	case updateLoanRequest:
		amount = req.Amount
	default:
		return
	}
	if !amount.Equal(amount.Round(maxAmountDecimals)) {
		sl.ReportError(amount.String(), "amount", "Amount", "decimals", strconv.Itoa(maxAmountDecimals))
	}
}

// Validate satisfies the echo.Validator interface. Field violations are
// returned as a *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, domain.FieldError{
			Field:         fe.Field(),
			Message:       fieldError(fe),
			RejectedValue: fe.Value(),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "decimals":
		return fmt.Sprintf("must have at most %s decimal places", fe.Param())
	case "iddoc":
		return "must be 3 letters followed by 5 digits (e.g. ABC12345)"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
