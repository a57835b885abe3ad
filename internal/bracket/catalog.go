package bracket

import (
	"fmt"

	dErrors "ageutil/pkg/domain-errors"
)

// Catalog is an immutable set of named brackets. It is safe for concurrent use.
type Catalog struct {
	defs  map[string]Definition
	names []string
}

// NewCatalog validates defs and indexes them by normalized name.
//
// Errors: CodeInvalidArgument for empty or duplicate names and invalid
// definitions.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]Definition, len(defs))}
	for i, d := range defs {
		d.Normalize()
		if d.Name == "" {
			return nil, dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("bracket %d has no name", i))
		}
		if _, dup := c.defs[d.Name]; dup {
			return nil, dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("duplicate bracket %q", d.Name))
		}
		if err := d.Validate(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, fmt.Sprintf("bracket %q: %v", d.Name, err))
		}
		c.defs[d.Name] = d
		c.names = append(c.names, d.Name)
	}
	return c, nil
}

// Get returns the bracket called name.
//
// Errors: CodeNotFound for unknown names.
func (c *Catalog) Get(name string) (Definition, error) {
	d, ok := c.defs[NormalizeName(name)]
	if !ok {
		return Definition{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("bracket %q not found", name))
	}
	return d, nil
}

// Names returns bracket names in definition order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) Len() int {
	return len(c.names)
}

// Defaults returns the built-in catalog used when no file is configured.
func Defaults() *Catalog {
	c, err := NewCatalog(
		Definition{Name: "infant", From: &Units{Years: Int(0)}},
		Definition{Name: "toddler", From: &Units{Years: Int(1)}, To: &Units{Years: Int(2)}},
		Definition{Name: "child", From: &Units{Years: Int(3)}, To: &Units{Years: Int(12)}},
		Definition{Name: "teen", From: &Units{Years: Int(13)}, To: &Units{Years: Int(17)}},
		Definition{Name: "minor", To: &Units{Years: Int(17)}},
		Definition{Name: "adult", From: &Units{Years: Int(18)}, OrOlder: true},
		Definition{Name: "senior", From: &Units{Years: Int(65)}, OrOlder: true},
	)
	if err != nil {
		panic(err)
	}
	return c
}
