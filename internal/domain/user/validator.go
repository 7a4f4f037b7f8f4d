package user

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateCredentials(c Credentials) error
	ValidatePassword(password string) error
}

type CredentialsValidator struct {
	validate     *validator.Validate
	requireDigit bool
	requireUpper bool
	requireLower bool
}

// NewCredentialsValidator создает новый валидатор
func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		requireDigit: true,
		requireUpper: false,
		requireLower: true,
	}
}

// ValidateCredentials валидирует email и пароль
func (v *CredentialsValidator) ValidateCredentials(c Credentials) error {
	if err := v.validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed on '%s'", strings.ToLower(fe.Field()), fe.Tag())
		}
		return err
	}

	return v.ValidatePassword(c.Password)
}

// ValidatePassword валидирует пароль
func (v *CredentialsValidator) ValidatePassword(password string) error {
	if err := v.validate.Var(password, "required,min=8,max=72"); err != nil {
		return fmt.Errorf("password must be 8 to 72 characters")
	}

	hasLower := false
	hasUpper := false
	hasDigit := false

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if v.requireLower && !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if v.requireUpper && !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if v.requireDigit && !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	return nil
}
