package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chronos-tachyon/crcdriver"
)

// job is one simulated client: a buffer and the algorithm to run over it.
type job struct {
	Name      string
	Data      []byte
	Algorithm crcdriver.Algorithm
	Terminate bool
}

type scenarioFile struct {
	Clients []scenarioClient `yaml:"clients"`
}

type scenarioClient struct {
	Name      string `yaml:"name"`
	File      string `yaml:"file"`
	Text      string `yaml:"text"`
	Algorithm string `yaml:"algorithm"`
	Terminate bool   `yaml:"terminate"`
}

// loadScenario reads a YAML scenario listing one entry per client.  Relative
// file paths are resolved against the scenario's directory.
func loadScenario(path string, defaultAlg crcdriver.Algorithm) ([]job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseScenario(raw, filepath.Dir(path), defaultAlg)
}

func parseScenario(raw []byte, dir string, defaultAlg crcdriver.Algorithm) ([]job, error) {
	var sf scenarioFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	jobs := make([]job, 0, len(sf.Clients))
	for index, sc := range sf.Clients {
		j := job{
			Name:      sc.Name,
			Algorithm: defaultAlg,
			Terminate: sc.Terminate,
		}

		if sc.Algorithm != "" {
			if err := j.Algorithm.Parse(sc.Algorithm); err != nil {
				return nil, fmt.Errorf("clients[%d]: %w", index, err)
			}
		}

		switch {
		case sc.File != "" && sc.Text != "":
			return nil, fmt.Errorf("clients[%d]: file and text are mutually exclusive", index)
		case sc.File != "":
			path := sc.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("clients[%d]: %w", index, err)
			}
			j.Data = data
			if j.Name == "" {
				j.Name = sc.File
			}
		default:
			j.Data = []byte(sc.Text)
		}

		if j.Name == "" {
			j.Name = fmt.Sprintf("client-%d", index+1)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// loadFiles makes one job per named file; "-" reads standard input.
func loadFiles(names []string, alg crcdriver.Algorithm) ([]job, error) {
	jobs := make([]job, 0, len(names))
	for _, name := range names {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{Name: name, Data: data, Algorithm: alg})
	}
	return jobs, nil
}
