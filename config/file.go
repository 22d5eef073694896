/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultMaxWorkers bounds concurrent writes when the file does not.
const DefaultMaxWorkers = 16

// File is the agent configuration file.
//
//	log:
//	  level: debug
//	writer:
//	  max_workers: 8
//	repositories:
//	  archive:
//	    parameters:
//	      mongo_uri: ${MONGO_URI}
//	      mongo_db: records
//	      mongo_collection: fs
//	      useGridFS: true
//	      idField: docId
//	    start_time: 1704067200000
type File struct {
	Log          LogConfig                   `yaml:"log"`
	Writer       WriterConfig                `yaml:"writer"`
	Repositories map[string]RepositoryConfig `yaml:"repositories"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// WriterConfig configures the document writer.
type WriterConfig struct {
	MaxWorkers int64 `yaml:"max_workers"`
}

// RepositoryConfig holds the host parameters of one repository.
type RepositoryConfig struct {
	Parameters map[string]any `yaml:"parameters"`
	StartTime  int64          `yaml:"start_time"`
	EndTime    int64          `yaml:"end_time"`
}

// Params converts the repository entry to Parameters.
func (r RepositoryConfig) Params() MapParameters {
	values := make(map[string]string, len(r.Parameters))
	for k, v := range r.Parameters {
		if v == nil {
			values[k] = ""
			continue
		}
		values[k] = fmt.Sprint(v)
	}
	return MapParameters{Values: values, Start: r.StartTime, End: r.EndTime}
}

// Load reads a configuration file. Variables from a .env file in the working
// directory are loaded first and ${VAR} references in the file are expanded.
func Load(path string) (*File, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes a configuration document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if f.Writer.MaxWorkers <= 0 {
		f.Writer.MaxWorkers = DefaultMaxWorkers
	}
	if f.Log.Level == "" {
		f.Log.Level = "info"
	}
	return &f, nil
}

// Repository returns the named repository entry.
func (f *File) Repository(name string) (RepositoryConfig, error) {
	r, ok := f.Repositories[name]
	if !ok {
		return RepositoryConfig{}, fmt.Errorf("repository %q is not configured", name)
	}
	return r, nil
}

// RepositoryNames lists the configured repositories in sorted order.
func (f *File) RepositoryNames() []string {
	names := make([]string, 0, len(f.Repositories))
	for name := range f.Repositories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
