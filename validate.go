package idosoms

import (
	"errors"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// SignUpData is the registration payload. Role and municipality are
// optional; new accounts default to "agente" with no municipality.
type SignUpData struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	CPF           string `json:"cpf"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	IBGEMunicipio string `json:"ibge_municipio"`
}

// Validate runs every local check. It never touches the network; a failure
// here means no provider or store call was made.
func (d SignUpData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&d.Email, validation.Required, is.Email),
		validation.Field(&d.Password, validation.Required, validation.By(validatePasswordStrength)),
		validation.Field(&d.CPF, validation.By(validateOptionalCPF)),
		validation.Field(&d.Phone, validation.By(validateOptionalBRPhone)),
		validation.Field(&d.Role, validation.By(validateOptionalRole)),
	)
}

// ValidateEmail checks address shape only; ownership is the provider's
// problem.
func ValidateEmail(email string) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return errors.New("email inválido")
	}
	return nil
}

// ValidateSignIn checks the sign-in inputs before any network round-trip.
func ValidateSignIn(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return errors.New("senha é obrigatória")
	}
	return nil
}

// ValidatePasswordStrength enforces the account password policy: at least
// 8 characters with upper case, lower case, digit and symbol.
func ValidatePasswordStrength(password string) error {
	return validatePasswordStrength(password)
}

func validatePasswordStrength(value any) error {
	password, _ := value.(string)
	if password == "" {
		return errors.New("senha é obrigatória")
	}
	if len(password) < 8 {
		return errors.New("senha deve ter pelo menos 8 caracteres")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	switch {
	case !upper:
		return errors.New("senha deve ter pelo menos uma letra maiúscula")
	case !lower:
		return errors.New("senha deve ter pelo menos uma letra minúscula")
	case !digit:
		return errors.New("senha deve ter pelo menos um número")
	case !symbol:
		return errors.New("senha deve ter pelo menos um caractere especial")
	}
	return nil
}

func validateOptionalCPF(value any) error {
	cpf, _ := value.(string)
	if cpf == "" {
		return nil
	}
	if !ValidateCPF(cpf) {
		return errors.New("CPF inválido")
	}
	return nil
}

func validateOptionalBRPhone(value any) error {
	phone, _ := value.(string)
	if phone == "" {
		return nil
	}
	num, err := phonenumbers.Parse(phone, "BR")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return errors.New("telefone inválido")
	}
	return nil
}

func validateOptionalRole(value any) error {
	role, _ := value.(string)
	if role == "" {
		return nil
	}
	if !ValidRole(role) {
		return errors.New("perfil de acesso inválido")
	}
	return nil
}
