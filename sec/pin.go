package sec

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrWrongPIN = errors.New("PIN incorrecto")

// PINs maps a module name (e.g. "COBERTURA") to the bcrypt hash of its PIN
type PINs map[string]string

// Check compares pin with module's hash. Unknown modules fail the same way
// as wrong PINs.
func (p PINs) Check(module, pin string) error {
	hash, ok := p[strings.ToUpper(module)]
	if !ok {
		return ErrWrongPIN
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return ErrWrongPIN
	}
	return nil
}

func (p PINs) Modules() []string {
	return slices.Sorted(maps.Keys(p))
}

// Validate checks that every entry is a usable bcrypt hash
func (p PINs) Validate() error {
	for m, h := range p {
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return fmt.Errorf("pin hash for %q: %w", m, err)
		}
	}
	return nil
}

// HashPIN returns the bcrypt hash to store in the config
func HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", errors.New("empty PIN")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
