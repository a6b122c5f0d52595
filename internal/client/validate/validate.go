// Package validate holds the pure field-validation rules the screens apply
// before handing input to the auth coordinator. Each check returns a
// user-displayable message, or "" when the value is acceptable.
package validate

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const minPasswordLen = 6

// Field validates a single named form field. Unknown field names are
// accepted as-is: the server remains the authority for anything the client
// has no rule for.
func Field(name, value string) string {
	var err error
	switch name {
	case "email":
		err = validation.Validate(value, validation.Required, is.Email)
	case "password":
		err = validation.Validate(value,
			validation.Required,
			validation.Length(minPasswordLen, 0).Error("must be at least 6 characters"),
		)
	case "firstName", "lastName":
		err = validation.Validate(value, validation.Required)
	default:
		return ""
	}

	if err != nil {
		return err.Error()
	}
	return ""
}

// Confirmation checks that the password confirmation matches.
func Confirmation(password, confirmation string) string {
	err := validation.Validate(confirmation,
		validation.Required,
		validation.In(password).Error("passwords do not match"),
	)
	if err != nil {
		return err.Error()
	}
	return ""
}
