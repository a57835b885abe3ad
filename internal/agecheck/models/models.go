// Package models holds the request and result types of age evaluation.
package models

import (
	"ageutil/internal/bracket"
	"ageutil/pkg/calendar"
	dErrors "ageutil/pkg/domain-errors"
	limits "ageutil/pkg/platform/validation"
	"ageutil/pkg/validation"
)

// CustomBracketLabel names inline brackets in results and metrics.
const CustomBracketLabel = "custom"

// BracketSelector picks either a catalog bracket by name or an inline
// definition. Exactly one must be set.
type BracketSelector struct {
	Bracket string              `json:"bracket,omitempty"`
	Custom  *bracket.Definition `json:"custom,omitempty"`
}

func (s *BracketSelector) Normalize() {
	s.Bracket = bracket.NormalizeName(s.Bracket)
	if s.Custom != nil {
		s.Custom.Normalize()
	}
}

func (s *BracketSelector) Validate() error {
	if err := limits.CheckStringLength("bracket", s.Bracket, limits.MaxBracketNameLength); err != nil {
		return err
	}
	switch {
	case s.Bracket == "" && s.Custom == nil:
		return dErrors.New(dErrors.CodeInvalidArgument, "one of bracket or custom is required")
	case s.Bracket != "" && s.Custom != nil:
		return dErrors.New(dErrors.CodeInvalidArgument, "bracket and custom are mutually exclusive")
	case s.Custom != nil:
		if err := limits.CheckStringLength("custom.name", s.Custom.Name, limits.MaxBracketNameLength); err != nil {
			return err
		}
		return s.Custom.Validate()
	}
	return nil
}

// Label is the bracket name reported in results.
func (s *BracketSelector) Label() string {
	if s.Custom != nil {
		return CustomBracketLabel
	}
	return s.Bracket
}

// EvaluateRequest asks for one person's age and bracket membership. A zero
// ReferenceDate means the request date.
type EvaluateRequest struct {
	BracketSelector
	DateOfBirth   calendar.Date `json:"date_of_birth" validate:"required"`
	ReferenceDate calendar.Date `json:"reference_date"`
}

func (r *EvaluateRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	return r.BracketSelector.Validate()
}

// AgeBreakdown is an age in whole years, months past the last year, and days.
type AgeBreakdown struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// BirthBounds is the inclusive range of birth dates inside a bracket on
// the reference date. Earliest comes from the maximum age and Latest from the
// minimum; nil is open.
type BirthBounds struct {
	Earliest *calendar.Date `json:"earliest"`
	Latest   *calendar.Date `json:"latest"`
}

// DateWindow is the period during which one person is inside a bracket.
type DateWindow struct {
	From  *calendar.Date `json:"from"`
	Until *calendar.Date `json:"until"`
}

type EvaluateResult struct {
	ReferenceDate calendar.Date `json:"reference_date"`
	Bracket       string        `json:"bracket"`
	Age           AgeBreakdown  `json:"age"`
	Eligible      bool          `json:"eligible"`
	Window        DateWindow    `json:"window"`
	BirthBounds   BirthBounds   `json:"birth_bounds"`
}

// BatchRequest evaluates many dates of birth against one bracket.
type BatchRequest struct {
	BracketSelector
	ReferenceDate calendar.Date   `json:"reference_date"`
	DatesOfBirth  []calendar.Date `json:"dates_of_birth" validate:"required,min=1,dive,required"`
}

func (r *BatchRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	return r.BracketSelector.Validate()
}

// BatchItem is one entry of a batch result, in request order. Error holds a
// domain error code when this entry alone could not be evaluated.
type BatchItem struct {
	DateOfBirth calendar.Date `json:"date_of_birth"`
	Eligible    bool          `json:"eligible"`
	Age         AgeBreakdown  `json:"age"`
	Error       string        `json:"error,omitempty"`
}

type BatchResult struct {
	ReferenceDate calendar.Date `json:"reference_date"`
	Bracket       string        `json:"bracket"`
	BirthBounds   BirthBounds   `json:"birth_bounds"`
	EligibleCount int           `json:"eligible_count"`
	Results       []BatchItem   `json:"results"`
}

// BoundsRequest asks for the birth dates inside a named bracket.
type BoundsRequest struct {
	Bracket       string
	ReferenceDate calendar.Date
}

type BoundsResult struct {
	ReferenceDate calendar.Date `json:"reference_date"`
	Bracket       string        `json:"bracket"`
	BirthBounds   BirthBounds   `json:"birth_bounds"`
}

// BracketInfo describes a catalog bracket.
type BracketInfo struct {
	Name       string             `json:"name"`
	Definition bracket.Definition `json:"definition"`
}
