package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mainport/internal/model"
	"mainport/internal/service/calculator"
)

// scenarioFile lever settings read from YAML. Absent levers keep their defaults.
//
//	title: Hub growth
//	slots: 540000
//	freightShare: 4
//	scenario: Custom
//	shortPct: 50
//	mediumPct: 30
//	runways:
//	  Kaagbaan: 3
//	  Polderbaan: 1
type scenarioFile struct {
	model.ScenarioPatch `yaml:",inline"`
	Runways             map[string]float64 `yaml:"runways,omitempty"`
}

func loadScenarioFile(path string) (*scenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var sf scenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	return &sf, nil
}

// apply runs the file's levers through the engine on top of the default scenario.
func (sf *scenarioFile) apply(e *calculator.Engine) (model.ScenarioState, error) {
	st, err := e.ApplyPatch(e.DefaultState(), sf.ScenarioPatch)
	if err != nil {
		return st, err
	}
	if len(sf.Runways) > 0 {
		return e.SetRunwayShares(st, sf.Runways)
	}
	return st, nil
}
