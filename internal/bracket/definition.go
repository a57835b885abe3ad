// Package bracket defines named age brackets such as "toddler" or "adult" and
// loads catalogs of them from YAML.
package bracket

import (
	"fmt"
	"strings"

	"ageutil/pkg/age"
	"ageutil/pkg/calendar"
	dErrors "ageutil/pkg/domain-errors"
)

// Units is an age with optional components. A missing component is not the
// same as zero: see age.Of.
type Units struct {
	Years  *int `json:"years,omitempty"`
	Months *int `json:"months,omitempty"`
	Days   *int `json:"days,omitempty"`
}

func (u *Units) ageUnits() []age.Unit {
	if u == nil {
		return nil
	}
	var out []age.Unit
	if u.Years != nil {
		out = append(out, age.Years(*u.Years))
	}
	if u.Months != nil {
		out = append(out, age.Months(*u.Months))
	}
	if u.Days != nil {
		out = append(out, age.Days(*u.Days))
	}
	return out
}

func (u *Units) validate(field string) error {
	if u == nil {
		return nil
	}
	for _, f := range []struct {
		name string
		v    *int
	}{{"years", u.Years}, {"months", u.Months}, {"days", u.Days}} {
		if f.v != nil && *f.v < 0 {
			return dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("%s.%s must not be negative", field, f.name))
		}
	}
	return nil
}

// Definition describes an age bracket. From is the minimum age and To the
// maximum; OrOlder and OrYounger open the respective side.
type Definition struct {
	Name      string `json:"name,omitempty"`
	From      *Units `json:"from,omitempty"`
	To        *Units `json:"to,omitempty"`
	OrOlder   bool   `json:"or_older,omitempty"`
	OrYounger bool   `json:"or_younger,omitempty"`
}

// Normalize trims and lower-cases the name.
func (d *Definition) Normalize() {
	d.Name = NormalizeName(d.Name)
}

// Validate rejects negative units and contradictory options.
func (d *Definition) Validate() error {
	if err := d.From.validate("from"); err != nil {
		return err
	}
	if err := d.To.validate("to"); err != nil {
		return err
	}
	if d.OrOlder && d.To != nil {
		return dErrors.New(dErrors.CodeInvalidArgument, "to and or_older are mutually exclusive")
	}
	if d.OrYounger && d.From != nil {
		return dErrors.New(dErrors.CodeInvalidArgument, "from and or_younger are mutually exclusive")
	}
	return nil
}

// Predicate builds a fresh predicate for the bracket on the reference date.
// Each call returns a new value so callers may use the result concurrently
// with other calls.
func (d Definition) Predicate(on calendar.Date) *age.Predicate {
	p := age.Of(d.From.ageUnits()...).On(on)
	if d.To != nil {
		p.To(d.To.ageUnits()...)
	}
	if d.OrOlder {
		p.OrOlder()
	}
	if d.OrYounger {
		p.OrYounger()
	}
	return p
}

// NormalizeName is the canonical catalog key for a bracket name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Int returns a pointer to n, for building Units literals.
func Int(n int) *int {
	return &n
}
