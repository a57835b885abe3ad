package bracket

import (
	"fmt"

	dErrors "ageutil/pkg/domain-errors"
)

// MapCatalog converts a decoded YAML document into a Catalog.
func MapCatalog(path string, dto YAMLCatalog) (*Catalog, error) {
	if len(dto.Brackets) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("%s: no brackets defined", path))
	}
	defs := make([]Definition, 0, len(dto.Brackets))
	for _, b := range dto.Brackets {
		defs = append(defs, Definition{
			Name:      b.Name,
			From:      mapUnits(b.From),
			To:        mapUnits(b.To),
			OrOlder:   b.OrOlder,
			OrYounger: b.OrYounger,
		})
	}
	c, err := NewCatalog(defs...)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, fmt.Sprintf("%s: %v", path, err))
	}
	return c, nil
}

func mapUnits(u *YAMLUnits) *Units {
	if u == nil {
		return nil
	}
	return &Units{Years: u.Years, Months: u.Months, Days: u.Days}
}
