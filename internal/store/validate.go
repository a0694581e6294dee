package store

import (
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"passvault/internal/crypto"
	"passvault/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// pwdigest accepts the digest formats crypto.Hasher can verify.
	err := v.RegisterValidation("pwdigest", func(fl validator.FieldLevel) bool {
		return crypto.WellFormed(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// validateRegistry checks every record and fills in Username from the key.
func validateRegistry(reg domain.Registry) error {
	if reg == nil {
		return errors.New("registry is not an object")
	}
	for name, acc := range reg {
		if name == "" {
			return errors.New("registry contains an empty username")
		}
		if err := validate.Struct(acc); err != nil {
			return errors.Wrapf(err, "account %q", name)
		}
		acc.Username = name
		reg[name] = acc
	}
	return nil
}

func validateVault(doc *domain.VaultDocument) error {
	return validate.Struct(doc)
}
