package portguide

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

const (
	slugRequiredMsg = "Missing slug. Ensure the Basic Information section has '- Slug: your-port-slug'"
	nameRequiredMsg = "Missing port name. Ensure first line is '# Port Name'"
)

// FieldError reports a mandatory field that failed validation. The message
// names the authoring convention so the document can be corrected.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// Validate checks the identity fields a guide needs before it can be
// persisted. Slug is checked before name.
func Validate(g *PortGuide) error {
	if g == nil {
		return &FieldError{Field: "slug", Err: errors.New(slugRequiredMsg)}
	}
	if err := validation.Validate(g.Slug,
		validation.Required.Error(slugRequiredMsg),
	); err != nil {
		return &FieldError{Field: "slug", Err: err}
	}
	if err := validation.Validate(g.Name,
		validation.Required.Error(nameRequiredMsg),
	); err != nil {
		return &FieldError{Field: "name", Err: err}
	}
	return nil
}

// CanonicalSlug reports whether s already follows the lowercase, hyphenated
// URL form. Guides with other slugs are still accepted and stored as written.
func CanonicalSlug(s string) bool {
	return slug.IsValid(s)
}
