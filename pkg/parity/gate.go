package parity

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/engine"
	"github.com/ninehex/nhsim/pkg/model"
)

// GateConfig holds the convergence gate's thresholds and the scenario
// set it runs. Thresholds only ratchet
// down across revisions: CI should fail if a new GateConfig raises
// either threshold above the previous run's.
type GateConfig struct {
	ThresholdCritical int `yaml:"thresholdCritical" json:"thresholdCritical"`
	ThresholdMajor    int `yaml:"thresholdMajor" json:"thresholdMajor"`
	SnapshotInterval  int `yaml:"snapshotInterval" json:"snapshotInterval"`
}

// DefaultGateConfig returns the starting thresholds: zero tolerance for
// critical divergence, a small allowance for major divergence while the
// simulation is still maturing.
func DefaultGateConfig() GateConfig {
	return GateConfig{ThresholdCritical: 0, ThresholdMajor: 2, SnapshotInterval: 10}
}

func LoadGateConfig(path string) (*GateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parity: reading gate config: %w", err)
	}
	cfg := DefaultGateConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parity: parsing gate config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *GateConfig) Validate() error {
	if c.ThresholdCritical < 0 {
		return fmt.Errorf("parity: thresholdCritical must be >= 0")
	}
	if c.ThresholdMajor < 0 {
		return fmt.Errorf("parity: thresholdMajor must be >= 0")
	}
	if c.SnapshotInterval < 1 {
		return fmt.Errorf("parity: snapshotInterval must be >= 1")
	}
	return nil
}

// Scenario fixes a seed, starting role, and a command program to replay
// against both implementations.
type Scenario struct {
	Name    string
	Seed    uint64
	Role    string
	Program []action.Command
	Turns   int
}

// ScenarioResult is one scenario's outcome against a reference trace.
type ScenarioResult struct {
	Scenario      string         `json:"scenario"`
	Diffs         []StateDiff    `json:"diffs"`
	Critical      int            `json:"critical"`
	Major         int            `json:"major"`
	Minor         int            `json:"minor"`
	RngDivergence *RngDivergence `json:"rng_divergence,omitempty"`
}

// RunScenario replays scenario against the Go simulation, producing a
// snapshot every cfg.SnapshotInterval turns, and diffs each against the
// corresponding reference snapshot in cSnapshots (indexed in the same
// order). It is the caller's responsibility to have gathered cSnapshots
// from the C reference build ahead of time.
func RunScenario(cfg GateConfig, scenario Scenario, cSnapshots []GameSnapshot) (ScenarioResult, error) {
	gs := model.NewGameState(scenario.Seed)
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 0})
	gs.Levels[lvl.DLevel] = lvl
	gs.CurrentLevel = lvl.DLevel

	loop := engine.NewLoop(gs, engine.DefaultConfig())

	result := ScenarioResult{Scenario: scenario.Name}
	snapIdx := 0
	for turn := 0; turn < scenario.Turns && turn < len(scenario.Program); turn++ {
		loop.Step(scenario.Program[turn])
		if (turn+1)%cfg.SnapshotInterval != 0 {
			continue
		}
		if snapIdx >= len(cSnapshots) {
			break
		}
		gotSnap := Snapshot(gs)
		diffs := DiffSnapshots(gotSnap, cSnapshots[snapIdx])
		result.Diffs = append(result.Diffs, diffs...)
		snapIdx++
	}

	result.Critical, result.Major, result.Minor = CountBySeverity(result.Diffs)
	return result, nil
}

// RunScenarios runs every scenario concurrently via errgroup, each
// against its own GameState and worker subprocess's snapshots. Results
// are returned in the same order as scenarios regardless
// of completion order.
func RunScenarios(ctx context.Context, cfg GateConfig, scenarios []Scenario, cSnapshots [][]GameSnapshot) ([]ScenarioResult, error) {
	if len(scenarios) != len(cSnapshots) {
		return nil, fmt.Errorf("parity: %d scenarios but %d reference snapshot sets", len(scenarios), len(cSnapshots))
	}

	results := make([]ScenarioResult, len(scenarios))
	g, _ := errgroup.WithContext(ctx)
	for i := range scenarios {
		i := i
		g.Go(func() error {
			r, err := RunScenario(cfg, scenarios[i], cSnapshots[i])
			if err != nil {
				return fmt.Errorf("parity: scenario %q: %w", scenarios[i].Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Passes reports whether result satisfies cfg's thresholds.
func (r ScenarioResult) Passes(cfg GateConfig) bool {
	if r.RngDivergence != nil {
		return false
	}
	return r.Critical <= cfg.ThresholdCritical && r.Major <= cfg.ThresholdMajor
}
