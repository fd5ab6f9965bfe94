package production

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// TracePersister stores traces by run ID.
type TracePersister interface {
	Save(ctx context.Context, trace Trace) error
	Load(ctx context.Context, runID string) (Trace, error)
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

// Path returns the file a run's trace is stored in.
func (p *JSONPersister) Path(runID string) string {
	return filepath.Join(p.dir, runID+".json")
}

func (p *JSONPersister) Save(ctx context.Context, trace Trace) error {
	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeTrace(p.Path(trace.RunID), data)
}

func (p *JSONPersister) Load(ctx context.Context, runID string) (Trace, error) {
	data, err := readTrace(p.Path(runID), runID)
	if err != nil {
		return Trace{}, err
	}
	var trace Trace
	if err := json.Unmarshal(data, &trace); err != nil {
		return Trace{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return checkTrace(trace, runID)
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

// Path returns the file a run's trace is stored in.
func (p *YAMLPersister) Path(runID string) string {
	return filepath.Join(p.dir, runID+".yaml")
}

func (p *YAMLPersister) Save(ctx context.Context, trace Trace) error {
	data, err := yaml.Marshal(trace)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return writeTrace(p.Path(trace.RunID), data)
}

func (p *YAMLPersister) Load(ctx context.Context, runID string) (Trace, error) {
	data, err := readTrace(p.Path(runID), runID)
	if err != nil {
		return Trace{}, err
	}
	var trace Trace
	if err := yaml.Unmarshal(data, &trace); err != nil {
		return Trace{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return checkTrace(trace, runID)
}

// LoadTraceFile reads a trace from a .json, .yaml or .yml file.
func LoadTraceFile(path string) (Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Trace{}, fmt.Errorf("read %s: %w", path, err)
	}
	var trace Trace
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(data, &trace)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &trace)
	default:
		return Trace{}, fmt.Errorf("%s: unknown trace format", path)
	}
	if err != nil {
		return Trace{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return checkTrace(trace, trace.RunID)
}

func writeTrace(fn string, data []byte) error {
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func readTrace(fn, runID string) ([]byte, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("run %q: %w", runID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}

func checkTrace(trace Trace, runID string) (Trace, error) {
	trace.RunID = runID // Ensure ID
	if err := trace.Config.Validate(); err != nil {
		return Trace{}, fmt.Errorf("config validation after load: %w", err)
	}
	return trace, nil
}
