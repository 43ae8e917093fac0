package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML shape of an external executor catalog.
type catalogFile struct {
	Executors []ExecutorInfo `yaml:"executors"`
}

// LoadCatalogFile parses an executor catalog from a YAML file. The file
// lists executors in the order they should appear in formatted catalogs:
//
//	executors:
//	  - id: my_executor
//	    description: Does something
//	    schema:
//	      properties:
//	        - name: input
//	          type: string
//	          required: true
func LoadCatalogFile(path string) ([]ExecutorInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}

	for i, info := range cf.Executors {
		if info.ID == "" {
			return nil, fmt.Errorf("catalog file %s: executor at index %d has no id", path, i)
		}
	}
	return cf.Executors, nil
}

// LoadFile registers every executor from a YAML catalog file.
func (r *Registry) LoadFile(path string) error {
	infos, err := LoadCatalogFile(path)
	if err != nil {
		return err
	}
	for _, info := range infos {
		if err := r.Register(info); err != nil {
			return err
		}
	}
	return nil
}
