package model

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Named validation rules referenced by the form schema.
const (
	RuleDigits     = "digitsonly"
	RulePostalCode = "postalcode"
	RulePhone      = "phonechars"
)

var (
	reDigits     = regexp.MustCompile(`^\d+$`)
	rePostalCode = regexp.MustCompile(`^\d{3}-?\d{4}$`)
	rePhoneChars = regexp.MustCompile(`^[\d\-()]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(RuleDigits, matching(reDigits))
	_ = v.RegisterValidation(RulePostalCode, matching(rePostalCode))
	_ = v.RegisterValidation(RulePhone, matching(rePhoneChars))
	return v
}

func matching(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

const (
	msgRequired     = "入力してください"
	msgSelect       = "選択してください"
	msgDigitsOnly   = "数字のみ入力してください"
	msgPostalCode   = "正しい郵便番号を入力してください（例: 123-4567）"
	msgPhoneNumber  = "正しい電話番号を入力してください"
	msgMobileNumber = "正しい携帯番号を入力してください"
	msgInvalidField = "入力内容が正しくありません"
)

// Inline messages per field and rule.
var ruleMessages = map[string]string{
	"accountNumber." + RuleDigits:     msgDigitsOnly,
	"newPostalCode." + RulePostalCode: msgPostalCode,
	"phoneNumber." + RulePhone:        msgPhoneNumber,
	"mobileNumber." + RulePhone:       msgMobileNumber,
}

// FieldError is one inline validation message, addressed by schema field id
// so the client can attach it to the right input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks a submission against the (settings-applied) schema. Hidden
// fields are skipped entirely. Format rules only fire on non-empty values;
// required comes first, so a field reports at most one message. The result
// preserves schema order, making the first failing field deterministic.
func Validate(s Submission, fields []Field) []FieldError {
	values := s.Values()

	var errs []FieldError
	for _, f := range fields {
		if f.Hidden {
			continue
		}
		value := strings.TrimSpace(values[f.Name])

		if f.Required && value == "" {
			msg := msgRequired
			if f.Kind == KindRadio || f.Kind == KindSelect {
				msg = msgSelect
			}
			errs = append(errs, FieldError{Field: f.ID, Message: msg})
			continue
		}
		if value == "" || f.Rule == "" {
			continue
		}

		if err := validate.Var(value, f.Rule); err != nil {
			msg, ok := ruleMessages[f.Name+"."+f.Rule]
			if !ok {
				msg = msgInvalidField
			}
			errs = append(errs, FieldError{Field: f.ID, Message: msg})
		}
	}
	return errs
}
