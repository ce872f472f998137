package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/prevet/prevet/pkg/engine"
	"github.com/prevet/prevet/pkg/status"
)

// FileSource loads a blueprint from a YAML file. It implements
// engine.BlueprintSource, so a register can reload it from disk at any
// time.
type FileSource struct {
	path     string
	statuses *status.Registry
	validate *validator.Validate
}

// Option configures a FileSource.
type Option func(*FileSource)

// WithStatusRegistry resolves status override names against a custom
// registry instead of the stock statuses.
func WithStatusRegistry(reg *status.Registry) Option {
	return func(s *FileSource) {
		s.statuses = reg
	}
}

// NewFileSource creates a source for the blueprint file at path. The
// file is not read until the blueprint builds.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{
		path:     path,
		statuses: status.DefaultRegistry,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the file name without its extension.
func (s *FileSource) Name() string {
	base := filepath.Base(s.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Path returns the file path.
func (s *FileSource) Path() string { return s.path }

// Load reads and parses the blueprint file. Unknown YAML fields, missing
// required fields, unknown tag or link names and unresolvable status
// names are all config errors.
func (s *FileSource) Load() (*engine.BlueprintData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, engine.NewConfigError(
			fmt.Sprintf("failed to read blueprint %q", s.path), err,
		)
	}
	return s.parse(raw)
}

func (s *FileSource) parse(raw []byte) (*engine.BlueprintData, error) {
	var file BlueprintFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, engine.NewConfigError(
			fmt.Sprintf("failed to parse blueprint %q", s.path), err,
		)
	}

	if err := s.validate.Struct(&file); err != nil {
		return nil, engine.NewConfigError(
			fmt.Sprintf("invalid blueprint %q", s.path), err,
		)
	}

	descriptions := make(map[string]engine.Description, len(file.Descriptions))
	for id, proc := range file.Descriptions {
		desc, err := s.description(proc)
		if err != nil {
			return nil, err
		}
		descriptions[id] = desc
	}

	return &engine.BlueprintData{
		Header:       file.Header,
		Descriptions: descriptions,
		Settings:     file.Settings,
	}, nil
}

func (s *FileSource) description(proc ProcessorConfig) (engine.Description, error) {
	tags, err := engine.ParseTags(proc.Tags...)
	if err != nil {
		return engine.Description{}, err
	}

	arguments, err := s.arguments(proc)
	if err != nil {
		return engine.Description{}, err
	}

	links := make([]engine.LinkSpec, 0, len(proc.Links))
	for _, link := range proc.Links {
		driver, err := engine.ParseLink(link.Driver)
		if err != nil {
			return engine.Description{}, err
		}
		driven, err := engine.ParseLink(link.Driven)
		if err != nil {
			return engine.Description{}, err
		}
		links = append(links, engine.LinkSpec{
			Target: link.Target,
			Driver: driver,
			Driven: driven,
		})
	}

	overrides, err := s.overrides(proc)
	if err != nil {
		return engine.Description{}, err
	}

	return engine.Description{
		Process:         proc.Process,
		Category:        proc.Category,
		Arguments:       arguments,
		Tags:            tags,
		Links:           links,
		StatusOverrides: overrides,
		Extra:           proc.Data,
	}, nil
}

func (s *FileSource) arguments(proc ProcessorConfig) (map[engine.Operation]engine.Args, error) {
	if len(proc.Arguments) == 0 {
		return nil, nil
	}

	arguments := make(map[engine.Operation]engine.Args, len(proc.Arguments))
	for name, args := range proc.Arguments {
		op := engine.Operation(name)
		if err := op.Validate(); err != nil {
			return nil, engine.NewConfigError(
				fmt.Sprintf("processor %q registers arguments for unknown operation %q", proc.Process, name), err,
			).WithProcess(proc.Process)
		}
		arguments[op] = engine.Args{
			Positional: args.Args,
			Keyword:    args.Kwargs,
		}
	}
	return arguments, nil
}

func (s *FileSource) overrides(proc ProcessorConfig) (map[string]engine.StatusOverride, error) {
	if len(proc.Statuses) == 0 {
		return nil, nil
	}

	overrides := make(map[string]engine.StatusOverride, len(proc.Statuses))
	for thread, cfg := range proc.Statuses {
		var override engine.StatusOverride

		if cfg.Fail != "" {
			st, err := s.lookupStatus(proc.Process, cfg.Fail)
			if err != nil {
				return nil, err
			}
			override.Fail = &st
		}
		if cfg.Success != "" {
			st, err := s.lookupStatus(proc.Process, cfg.Success)
			if err != nil {
				return nil, err
			}
			override.Success = &st
		}

		overrides[thread] = override
	}
	return overrides, nil
}

func (s *FileSource) lookupStatus(process, name string) (status.Status, error) {
	st, ok := s.statuses.ByName(name)
	if !ok {
		return status.Status{}, engine.NewConfigError(
			fmt.Sprintf("processor %q references unknown status %q", process, name), nil,
		).WithProcess(process)
	}
	return st, nil
}
