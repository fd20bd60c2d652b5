package cases

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/caseatlas/caseatlas/pkg/errors"
)

// LoadFile reads a YAML case list produced by the acquisition
// collaborator. Every loaded case gets its unique key populated.
func LoadFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, path)
}

// parse decodes a YAML case list and fills in missing unique keys.
func parse(data []byte, source string) ([]Case, error) {
	var loaded []Case
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, errors.WrapParse("yaml", source, err)
	}

	out := make([]Case, 0, len(loaded))
	for _, c := range loaded {
		if c.Title == "" {
			return nil, &errors.ValidationError{Field: "title", Message: "case without a title in " + source}
		}
		out = append(out, c.WithKey())
	}
	return out, nil
}
