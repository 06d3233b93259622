package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mainport/internal/model"
	"mainport/internal/testutil"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenarioFile(t *testing.T) {
	path := writeScenario(t, `
title: Hub growth
slots: 540000
freightShare: 4
scenario: Custom
shortPct: 50
mediumPct: 30
runways:
  Kaagbaan: 3
  Polderbaan: 1
`)

	sf, err := loadScenarioFile(path)
	require.NoError(t, err)
	require.NotNil(t, sf.Slots)
	assert.Equal(t, 540000, *sf.Slots)
	assert.Equal(t, model.ArchetypeCustom, *sf.Archetype)
	require.NotNil(t, sf.Title)
	assert.Equal(t, map[string]float64{"Kaagbaan": 3, "Polderbaan": 1}, sf.Runways)

	engine, err := testutil.Engine()
	require.NoError(t, err)

	st, err := sf.apply(engine)
	require.NoError(t, err)
	assert.Equal(t, "Hub growth", st.Title)
	assert.Equal(t, model.HaulMix{ShortPct: 50, MediumPct: 30, LongPct: 20}, st.HaulMix)
	assert.InDelta(t, 0.75, st.RunwayShares["Kaagbaan"], 1e-12)
	assert.Zero(t, st.RunwayShares["Oostbaan"])
}

func TestLoadScenarioFileErrors(t *testing.T) {
	_, err := loadScenarioFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = loadScenarioFile(writeScenario(t, "slots: [1, 2"))
	assert.Error(t, err)
}

func TestScenarioFromFileDefault(t *testing.T) {
	engine, err := testutil.Engine()
	require.NoError(t, err)

	st, err := scenarioFromFile(engine, "")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultState(), st)
}

func TestValidateScenarioFile(t *testing.T) {
	engine, err := testutil.Engine()
	require.NoError(t, err)

	tests := []struct {
		name     string
		body     string
		problems int
	}{
		{"defaults", "title: ok\n", 0},
		{"negative slots and freight", "slots: -1\nfreightShare: 101\n", 2},
		{"unknown scenario", "scenario: Regional\n", 1},
		{"locked haul mix", "shortPct: 70\n", 1},
		{"unknown runway", "runways:\n  Runway 99: 1\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, err := loadScenarioFile(writeScenario(t, tt.body))
			require.NoError(t, err)
			assert.Len(t, validateScenarioFile(engine, sf), tt.problems)
		})
	}
}

func TestPrintScenario(t *testing.T) {
	engine, err := testutil.Engine()
	require.NoError(t, err)
	st := engine.DefaultState()
	res, err := engine.Recompute(st)
	require.NoError(t, err)

	var buf bytes.Buffer
	printScenario(&buf, st, res)
	out := buf.String()
	assert.Contains(t, out, model.DefaultTitle)
	assert.Contains(t, out, "short 40 / medium 35 / long 25")
	assert.Contains(t, out, "Total passengers (millions)")
	assert.Contains(t, out, "Passengers - Long")

	buf.Reset()
	printReferenceSummary(&buf, engine)
	assert.Contains(t, buf.String(), "noise zones: 2")
	assert.Contains(t, buf.String(), "baseline haul mix: 40 / 35 / 25")
}
