package lookup

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource reads a Snapshot from a YAML document:
//
//	office_codes: ["001", "002"]
//	phone_numbers: ["090-1234-5678"]
//	employee_codes: ["1001"]
//
// An omitted list leaves its set nil.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path. An empty path yields an empty
// snapshot with every reference check disabled.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements Source.
func (s *FileSource) Load(_ context.Context) (*Snapshot, error) {
	if s.path == "" {
		return &Snapshot{}, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup file: %w", err)
	}

	return parseYAML(data)
}

func parseYAML(data []byte) (*Snapshot, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse lookup file: %w", err)
	}

	snap := &Snapshot{}
	for _, st := range sets {
		values, ok := raw[st.name]
		if ok && values == nil {
			values = []string{}
		}
		*st.dst(snap) = buildSet(st.kind, values)
	}
	return snap, nil
}
