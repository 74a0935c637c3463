package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var hashRegexp = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// IsValidHash accepts 0x prefixed 32 byte hex strings
func IsValidHash(hash string) bool {
	return hashRegexp.MatchString(hash)
}

// New returns a validate instance with the eth_addr and eth_hash tags registered
func New() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("eth_addr", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.String:
			return IsValidAddress(f.String())
		case reflect.Array:
			if a, ok := f.Interface().(common.Address); ok {
				return a != (common.Address{})
			}
		}
		return false
	})
	v.RegisterValidation("eth_hash", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && IsValidHash(fl.Field().String())
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
