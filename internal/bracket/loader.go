package bracket

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	dErrors "ageutil/pkg/domain-errors"
)

// Load reads a YAML bracket catalog:
//
//	brackets:
//	  - name: toddler
//	    from: {years: 1}
//	    to: {years: 2}
//	  - name: adult
//	    from: {years: 18}
//	    or_older: true
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("read bracket catalog %s", path))
	}
	return Parse(path, b)
}

// Parse decodes a YAML catalog; path is used only in error messages.
func Parse(path string, b []byte) (*Catalog, error) {
	var dto YAMLCatalog
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, fmt.Sprintf("decode bracket catalog %s: %v", path, err))
	}
	return MapCatalog(path, dto)
}
