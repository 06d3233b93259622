package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mainport/internal/config"
	"mainport/internal/model"
	"mainport/internal/server"
	"mainport/internal/service/calculator"
	"mainport/internal/service/reference"
	"mainport/internal/util"
)

type serveOptions struct {
	port    int
	dev     bool
	dataDir string
}

func setupLogging(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Server.DevMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func loadConfig(path, dataDir string) (*config.AppConfig, config.LoadConfigInfo, error) {
	cfg, info, err := config.LoadConfigWithInfo(path)
	if err != nil {
		return nil, info, fmt.Errorf("loading config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}
	return cfg, info, nil
}

func referenceFiles(cfg *config.AppConfig) reference.Files {
	return reference.Files{
		Scenarios:  cfg.DataPath(cfg.Data.ScenariosFile),
		Haul:       cfg.DataPath(cfg.Data.HaulFile),
		Economics:  cfg.DataPath(cfg.Data.EconomicsFile),
		Governance: cfg.DataPath(cfg.Data.GovernanceFile),
		Zones:      cfg.DataPath(cfg.Data.ZonesFile),
	}
}

// buildEngine loads the reference data set named by cfg and prepares the engine.
func buildEngine(cfg *config.AppConfig) (*calculator.Engine, error) {
	params := cfg.Params()
	names := make([]string, len(params.Runways))
	for i, r := range params.Runways {
		names[i] = r.Name
	}

	tables, err := reference.Load(referenceFiles(cfg), names)
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}
	return calculator.NewEngine(tables, params)
}

func runServe(ctx context.Context, configPath string, opts serveOptions) error {
	cfg, info, err := loadConfig(configPath, opts.dataDir)
	if err != nil {
		return err
	}
	if opts.port > 0 && !info.PortSpecified {
		cfg.Server.Port = opts.port
	}
	if opts.dev {
		cfg.Server.DevMode = true
	}
	setupLogging(cfg)

	log.Info().
		Str("config", info.Path).
		Bool("configFound", info.FileFound).
		Str("dataDir", cfg.Data.DataDir).
		Msg("configuration loaded")

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, engine)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := util.DashboardURL(cfg.Server.Port)

	if !cfg.Server.DevMode {
		go func() {
			// give the listener a moment before the browser asks for the page
			time.Sleep(300 * time.Millisecond)
			log.Info().Str("url", url).Msg("opening browser")
			if err := util.OpenBrowserWithFallback(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("could not open a browser, visit the url manually")
			}
		}()
	} else {
		log.Info().Str("url", url).Msg("development mode")
	}

	return srv.Run(ctx, addr)
}

// scenarioFromFile default scenario, or the default with the file's levers applied.
func scenarioFromFile(e *calculator.Engine, path string) (model.ScenarioState, error) {
	if path == "" {
		return e.DefaultState(), nil
	}
	sf, err := loadScenarioFile(path)
	if err != nil {
		return model.ScenarioState{}, err
	}
	return sf.apply(e)
}

func runCompute(w io.Writer, configPath, dataDir, scenarioPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}
	setupLogging(cfg)

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	st, err := scenarioFromFile(engine, scenarioPath)
	if err != nil {
		return err
	}
	res, err := engine.Recompute(st)
	if err != nil {
		return err
	}

	printScenario(w, st, res)
	return nil
}

func runValidate(w io.Writer, configPath, dataDir, scenarioPath string) error {
	cfg, info, err := loadConfig(configPath, dataDir)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	fmt.Fprintf(w, "config: %s (found: %t)\n", info.Path, info.FileFound)
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	printReferenceSummary(w, engine)

	if scenarioPath == "" {
		return nil
	}
	sf, err := loadScenarioFile(scenarioPath)
	if err != nil {
		return err
	}
	if problems := validateScenarioFile(engine, sf); len(problems) > 0 {
		printProblems(w, problems)
		return fmt.Errorf("scenario %s has %d problem(s)", scenarioPath, len(problems))
	}
	fmt.Fprintf(w, "scenario %s: VALID\n", scenarioPath)
	return nil
}

// validateScenarioFile lists every lever violation rather than stopping at the first.
func validateScenarioFile(e *calculator.Engine, sf *scenarioFile) []string {
	st := e.DefaultState()
	p := sf.ScenarioPatch

	slots, freight := st.Slots, st.FreightSharePct
	short, medium := st.HaulMix.ShortPct, st.HaulMix.MediumPct
	if p.Slots != nil {
		slots = *p.Slots
	}
	if p.FreightSharePct != nil {
		freight = *p.FreightSharePct
	}
	if p.ShortPct != nil {
		short = *p.ShortPct
	}
	if p.MediumPct != nil {
		medium = *p.MediumPct
	}
	problems := calculator.ValidateLevers(slots, freight, short, medium)

	if p.Archetype != nil && !p.Archetype.Valid() {
		problems = append(problems, fmt.Sprintf("unknown scenario %q", *p.Archetype))
	}
	if len(problems) == 0 {
		if _, err := sf.apply(e); err != nil {
			problems = append(problems, err.Error())
		}
	}
	return problems
}

// runInitConfig writes the default configuration, refusing to overwrite unless force is set.
func runInitConfig(w io.Writer, path string, force bool) error {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n", path)
	return nil
}
