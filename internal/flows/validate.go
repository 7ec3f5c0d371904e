package flows

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/akarpovs/authgate/internal/models"
	"github.com/akarpovs/authgate/internal/passwordx"
)

// Validation is always local and synchronous; a failure here blocks the
// request entirely. Checks run in a fixed order so the user sees the most
// fundamental problem first: required fields, then confirmation, then
// strength.

func validateLogin(email, password string) error {
	err := validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
	if err != nil {
		return wrapValidationError(err)
	}
	return nil
}

func validateRegistration(creds models.Credentials) error {
	err := validation.Errors{
		"email":    validation.Validate(creds.Email, validation.Required, is.Email),
		"password": validation.Validate(creds.Password, validation.Required),
	}.Filter()
	if err != nil {
		return wrapValidationError(err)
	}
	if creds.Password != creds.ConfirmPassword {
		return newValidationError("Passwords do not match.")
	}
	if !passwordx.Evaluate(creds.Password).Acceptable() {
		return newValidationError("Password is not strong enough. Please include a mix of uppercase, lowercase, numbers, and special characters.")
	}
	return nil
}

func validateVerification(email, token string) error {
	if email == "" || token == "" {
		return newValidationError("Email and token are required")
	}
	return nil
}

func validateReset(email, token, newPassword string) error {
	if email == "" || token == "" || newPassword == "" {
		return newValidationError("All fields are required")
	}
	return nil
}
