// Command nhsim drives the deterministic game-simulation kernel: it can
// start a fresh run and replay a scripted command program against it,
// stand in as a worker-protocol subprocess for a parity run,
// or serve the HTTP command surface (pkg/httpapi) for an external
// front-end.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/dungeon"
	"github.com/ninehex/nhsim/pkg/engine"
	"github.com/ninehex/nhsim/pkg/export"
	"github.com/ninehex/nhsim/pkg/httpapi"
	"github.com/ninehex/nhsim/pkg/logging"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/persist"
	"github.com/ninehex/nhsim/pkg/script"
	"github.com/ninehex/nhsim/pkg/worker"
)

const version = "1.0.0"

var (
	engineConfigPath  = flag.String("config", "", "Path to YAML engine configuration file (optional)")
	dungeonConfigPath = flag.String("dungeon-config", "", "Path to YAML dungeon configuration file (optional)")
	seedFlag          = flag.Uint64("seed", 1, "RNG seed for a fresh run")
	role              = flag.String("role", "Valkyrie", "Starting role")
	race              = flag.String("race", "Human", "Starting race")
	gender            = flag.String("gender", "Female", "Starting gender")
	align             = flag.String("align", "Lawful", "Starting alignment")
	scriptPath        = flag.String("script", "", "Path to a command-program script to replay (see pkg/script)")
	loadPath          = flag.String("load", "", "Load a save file instead of starting a fresh run")
	savePath          = flag.String("save", "", "Write a save file after the run completes")
	debugSVG          = flag.String("debug-svg", "", "Write a debug SVG of the current level to this path after the run")
	asWorker          = flag.Bool("worker", false, "Run as a worker-protocol subprocess over stdin/stdout")
	httpAddr          = flag.String("http", "", "Serve the HTTP command surface on this address instead of running a script")
	verbose           = flag.Bool("verbose", false, "Enable verbose output")
	versionF          = flag.Bool("version", false, "Print version and exit")
	help              = flag.Bool("help", false, "Show help message")
)

func main() {
	_ = godotenv.Load()
	logging.Initialize()
	flag.Parse()

	if *versionF {
		fmt.Printf("nhsim version %s\n", version)
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

	engineCfg := engine.DefaultConfig()
	if *engineConfigPath != "" {
		cfg, err := engine.LoadConfig(*engineConfigPath)
		if err != nil {
			return fmt.Errorf("loading engine config: %w", err)
		}
		engineCfg = *cfg
	}

	opts := engine.DefaultNewGameOptions()
	opts.Role, opts.Race, opts.Gender, opts.Alignment = *role, *race, *gender, *align
	if *dungeonConfigPath != "" {
		cfg, err := dungeon.LoadConfig(*dungeonConfigPath)
		if err != nil {
			return fmt.Errorf("loading dungeon config: %w", err)
		}
		opts.DungeonConfig = *cfg
	}

	if *verbose {
		fmt.Printf("Dungeon config digest: %x\n", opts.DungeonConfig.Hash()[:8])
	}

	gs, err := loadOrCreateGame(ctx, opts)
	if err != nil {
		return err
	}
	loop := engine.NewLoop(gs, engineCfg)

	switch {
	case *asWorker:
		return worker.NewServer(loop).Serve(ctx, os.Stdin, os.Stdout)
	case *httpAddr != "":
		if *verbose {
			fmt.Printf("Serving HTTP command surface on %s\n", *httpAddr)
		}
		return http.ListenAndServe(*httpAddr, httpapi.NewServer(loop))
	case *scriptPath != "":
		if err := runScript(loop); err != nil {
			return err
		}
	default:
		printStats(loop)
	}

	if *savePath != "" {
		if err := persist.Save(gs, *savePath); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		if *verbose {
			fmt.Printf("Saved to %s\n", *savePath)
		}
	}
	if *debugSVG != "" {
		if err := export.SaveSVGToFile(gs.Current(), *debugSVG, export.DefaultSVGOptions()); err != nil {
			return fmt.Errorf("writing debug SVG: %w", err)
		}
		if *verbose {
			fmt.Printf("Wrote debug SVG to %s\n", *debugSVG)
		}
	}
	return nil
}

func loadOrCreateGame(ctx context.Context, opts engine.NewGameOptions) (*model.GameState, error) {
	if *loadPath != "" {
		gs, err := persist.Load(*loadPath)
		if err != nil {
			return nil, fmt.Errorf("loading save: %w", err)
		}
		if *verbose {
			fmt.Printf("Loaded save from %s (turn %d)\n", *loadPath, gs.Turns)
		}
		return gs, nil
	}
	if *verbose {
		fmt.Printf("Starting fresh run: seed=%d role=%s race=%s\n", *seedFlag, opts.Role, opts.Race)
	}
	return engine.NewGame(ctx, *seedFlag, opts)
}

func runScript(loop *engine.Loop) error {
	data, err := os.ReadFile(*scriptPath)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	cmds, err := script.CompileSource(string(data))
	if err != nil {
		return fmt.Errorf("compiling script: %w", err)
	}

	if *verbose {
		fmt.Printf("Replaying %d commands\n", len(cmds))
	}
	for i, cmd := range cmds {
		result, end := loop.Step(cmd)
		if *verbose {
			fmt.Printf("  [%d] %s -> %s %s\n", i, commandLabel(cmd), resultLabel(result), end)
		}
		if end != engine.EndNone {
			fmt.Printf("Run ended: %s after %d turns\n", end, loop.GS.Turns)
			break
		}
	}
	printStats(loop)
	return nil
}

func commandLabel(cmd action.Command) string {
	return fmt.Sprintf("kind=%d dir=%d letter=%q", cmd.Kind, cmd.Dir, cmd.Letter)
}

func resultLabel(r action.Result) string {
	switch r.Kind {
	case action.ResultSuccess:
		return "Success"
	case action.ResultNoTime:
		return "NoTime"
	default:
		return "Failed(" + r.Reason + ")"
	}
}

func printStats(loop *engine.Loop) {
	gs := loop.GS
	fmt.Println("\nRun Statistics:")
	fmt.Printf("  Turns: %d\n", gs.Turns)
	fmt.Printf("  Position: %s\n", gs.Player.Pos)
	fmt.Printf("  HP: %d/%d\n", gs.Player.HP, gs.Player.HPMax)
	fmt.Printf("  Level: %s\n", gs.CurrentLevel)
	fmt.Printf("  Inventory: %d items\n", len(gs.Inventory))
	fmt.Printf("  Monsters on level: %d\n", len(gs.Current().Monsters))
}

func printHelp() {
	fmt.Printf("nhsim version %s\n\n", version)
	fmt.Println("Drives the deterministic game-simulation kernel.")
	fmt.Println("\nUsage:")
	fmt.Println("  nhsim [options]")
	fmt.Println("\nOptions:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  # Start a fresh run and print its starting stats")
	fmt.Println("  nhsim -seed 42 -role Valkyrie -verbose")
	fmt.Println("\n  # Replay a scripted command program")
	fmt.Println("  nhsim -seed 42 -script rest200.txt -verbose")
	fmt.Println("\n  # Stand in as a worker-protocol subprocess")
	fmt.Println("  nhsim -worker")
	fmt.Println("\n  # Serve the HTTP command surface")
	fmt.Println("  nhsim -seed 42 -http :8080")
}
