package service

import (
	"fmt"
	"strings"

	"eiborservice/internal/repository"
)

// Validator defines the interface for tenor validation.
type Validator interface {
	Parse(tenor string) (repository.Tenor, error)
}

type validator struct {
	supported map[repository.Tenor]struct{}
}

// NewValidator creates a validator accepting the given tenors, or every known tenor when none are given.
func NewValidator(tenors ...repository.Tenor) Validator {
	if len(tenors) == 0 {
		tenors = repository.AllTenors
	}
	v := &validator{supported: make(map[repository.Tenor]struct{}, len(tenors))}
	for _, t := range tenors {
		v.supported[t] = struct{}{}
	}
	return v
}

// Parse returns the canonical tenor for a case-insensitive key such as
// "3_month", or for a published label such as "3 Months" or "O/N".
func (v *validator) Parse(tenor string) (repository.Tenor, error) {
	t, err := repository.ParseTenor(strings.ToLower(tenor))
	if err != nil {
		label, ok := repository.TenorFromLabel(tenor)
		if !ok {
			return "", fmt.Errorf("%w: %w", ErrInvalidTenor, err)
		}
		t = label
	}
	if _, ok := v.supported[t]; !ok {
		return "", fmt.Errorf("%w: %q is not accepted here", ErrInvalidTenor, tenor)
	}
	return t, nil
}

// parseTenors validates a list of tenor keys, dropping duplicates. An empty
// list selects every tenor in maturity order.
func parseTenors(v Validator, raw []string) ([]repository.Tenor, error) {
	if len(raw) == 0 {
		return repository.AllTenors, nil
	}
	seen := make(map[repository.Tenor]struct{}, len(raw))
	out := make([]repository.Tenor, 0, len(raw))
	for _, r := range raw {
		t, err := v.Parse(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
