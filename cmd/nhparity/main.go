// Command nhparity drives the convergence-gate harness:
// it replays a fixed scenario against both this simulation and a
// C-reference worker subprocess over the wire protocol,
// diffing snapshots at a fixed turn interval and reporting pass/fail
// against a GateConfig's ratcheting thresholds. It is harness tooling,
// not core.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ninehex/nhsim/pkg/logging"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/parity"
	"github.com/ninehex/nhsim/pkg/script"
	"github.com/ninehex/nhsim/pkg/worker"
)

const version = "1.0.0"

var (
	workerPath     = flag.String("worker", "", "Path to the C reference worker binary (required; falls back to NH_WORKER_PATH)")
	gateConfigPath = flag.String("gate-config", "", "Path to a YAML GateConfig file (optional)")
	scriptPath     = flag.String("script", "", "Path to a command-program script (required)")
	seedFlag       = flag.Uint64("seed", 42, "RNG seed for both sides")
	role           = flag.String("role", "Valkyrie", "Starting role sent to both sides")
	turns          = flag.Int("turns", 200, "Number of commands to replay")
	scenarioName   = flag.String("name", "ad-hoc", "Scenario name used in the report")
	verbose        = flag.Bool("verbose", false, "Enable verbose output")
	versionF       = flag.Bool("version", false, "Print version and exit")
	help           = flag.Bool("help", false, "Show help message")
)

func main() {
	_ = godotenv.Load()
	logging.Initialize()
	flag.Parse()

	if *versionF {
		fmt.Printf("nhparity version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	path := *workerPath
	if path == "" {
		path = os.Getenv("NH_WORKER_PATH")
	}
	if path == "" {
		return fmt.Errorf("no worker binary given: pass -worker or set NH_WORKER_PATH")
	}
	if *scriptPath == "" {
		return fmt.Errorf("-script is required")
	}

	gateCfg := parity.DefaultGateConfig()
	if *gateConfigPath != "" {
		cfg, err := parity.LoadGateConfig(*gateConfigPath)
		if err != nil {
			return fmt.Errorf("loading gate config: %w", err)
		}
		gateCfg = *cfg
	}

	data, err := os.ReadFile(*scriptPath)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	cmds, err := script.CompileSource(string(data))
	if err != nil {
		return fmt.Errorf("compiling script: %w", err)
	}
	if len(cmds) > *turns {
		cmds = cmds[:*turns]
	}

	scenario := parity.Scenario{Name: *scenarioName, Seed: *seedFlag, Role: *role, Program: cmds, Turns: len(cmds)}

	if *verbose {
		fmt.Printf("Launching reference worker: %s\n", path)
	}
	client, err := worker.Start(ctx, path)
	if err != nil {
		return fmt.Errorf("starting worker: %w", err)
	}
	defer client.Close()

	cSnapshots, err := gatherReferenceSnapshots(client, scenario, gateCfg.SnapshotInterval)
	if err != nil {
		return fmt.Errorf("gathering reference snapshots: %w", err)
	}

	result, err := parity.RunScenario(gateCfg, scenario, cSnapshots)
	if err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}

	printResult(result, gateCfg)
	if !result.Passes(gateCfg) {
		os.Exit(1)
	}
	return nil
}

// gatherReferenceSnapshots drives the worker subprocess through the same
// command program, requesting a state snapshot every interval turns,
// and decodes the worker's
// GetStateJson/GetMapJson responses into parity.GameSnapshot values
// comparable against this implementation's own Snapshot extractor.
func gatherReferenceSnapshots(client *worker.Client, scenario parity.Scenario, interval int) ([]parity.GameSnapshot, error) {
	if _, err := client.Send(worker.Request{Type: worker.ReqInit, Role: scenario.Role}); err != nil {
		return nil, err
	}
	if _, err := client.Send(worker.Request{Type: worker.ReqResetRng, Seed: scenario.Seed}); err != nil {
		return nil, err
	}
	if _, err := client.Send(worker.Request{Type: worker.ReqGenerateLevel}); err != nil {
		return nil, err
	}

	var snapshots []parity.GameSnapshot
	for turn, cmd := range scenario.Program {
		req, ok := worker.AsRequest(cmd)
		if ok {
			if _, err := client.Send(req); err != nil {
				return nil, fmt.Errorf("turn %d: %w", turn, err)
			}
		}
		if (turn+1)%interval != 0 {
			continue
		}
		snap, err := fetchSnapshot(client)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", turn, err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// referenceState is the subset of a worker's GetStateJson/GetMapJson
// payloads needed to build a parity.GameSnapshot, decoded independently
// of model.GameState's full shape since a C reference build's JSON
// encoder need only agree on these field names.
type referenceState struct {
	Player struct {
		Pos        model.Position        `json:"pos"`
		HP         int32                  `json:"hp"`
		HPMax      int32                  `json:"hp_max"`
		Energy     int32                  `json:"energy"`
		Gold       int64                  `json:"gold"`
		Nutrition  int32                  `json:"nutrition"`
		Attributes [6]model.AttributePair `json:"attributes"`
	} `json:"player"`
	Turns     uint64                   `json:"turns"`
	Inventory []parity.InventoryItem   `json:"inventory"`
	Monsters  []parity.MonsterSnapshot `json:"monsters"`
}

func decodeJSON(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}

func fetchSnapshot(client *worker.Client) (parity.GameSnapshot, error) {
	stateResp, err := client.Send(worker.Request{Type: worker.ReqGetStateJson})
	if err != nil {
		return parity.GameSnapshot{}, err
	}
	mapResp, err := client.Send(worker.Request{Type: worker.ReqGetMapJson})
	if err != nil {
		return parity.GameSnapshot{}, err
	}

	var rs referenceState
	if err := decodeJSON(stateResp.Str, &rs); err != nil {
		return parity.GameSnapshot{}, fmt.Errorf("decoding state: %w", err)
	}
	var mapState struct {
		Monsters []parity.MonsterSnapshot `json:"monsters"`
	}
	if err := decodeJSON(mapResp.Str, &mapState); err != nil {
		return parity.GameSnapshot{}, fmt.Errorf("decoding map: %w", err)
	}

	snap := parity.GameSnapshot{
		Turn:      rs.Turns,
		X:         rs.Player.Pos.X,
		Y:         rs.Player.Pos.Y,
		HP:        rs.Player.HP,
		HPMax:     rs.Player.HPMax,
		Energy:    rs.Player.Energy,
		Gold:      rs.Player.Gold,
		Nutrition: rs.Player.Nutrition,
		Alive:     rs.Player.HP > 0,
		Inventory: rs.Inventory,
		Monsters:  mapState.Monsters,
	}
	for i := 0; i < 6 && i < len(rs.Player.Attributes); i++ {
		snap.Attributes[i] = rs.Player.Attributes[i].Current
	}
	return snap, nil
}

func printResult(r parity.ScenarioResult, cfg parity.GateConfig) {
	fmt.Printf("Scenario %q: critical=%d major=%d minor=%d\n", r.Scenario, r.Critical, r.Major, r.Minor)
	if r.RngDivergence != nil {
		fmt.Printf("  RNG divergence at call %d: %s\n", r.RngDivergence.CallIndex, r.RngDivergence.Description)
	}
	if *verbose {
		for _, d := range r.Diffs {
			fmt.Printf("  [%s] %s: got=%s c=%s\n", d.Severity, d.Field, d.GotValue, d.CValue)
		}
	}
	if r.Passes(cfg) {
		fmt.Println("PASS")
	} else {
		fmt.Printf("FAIL (thresholds: critical<=%d major<=%d)\n", cfg.ThresholdCritical, cfg.ThresholdMajor)
	}
}

func printHelp() {
	fmt.Printf("nhparity version %s\n\n", version)
	fmt.Println("Runs the Go-vs-C-reference convergence gate for one scenario.")
	fmt.Println("\nUsage:")
	fmt.Println("  nhparity -worker <path> -script <file> [options]")
	fmt.Println("\nOptions:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  nhparity -worker ./nh-reference -script rest200.txt -seed 42 -turns 200")
}
