package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"searchbox/internal/config"
	"searchbox/internal/eventbus"
	"searchbox/internal/searchapi"
	"searchbox/internal/ui"
)

func main() {
	// A .env next to the binary may carry the credential
	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "searchbox",
		Usage: "Search a site index with live suggestions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: config.DefaultPath(),
			},
			&cli.StringFlag{
				Name:  "repo",
				Usage: "Repository the index belongs to",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "Index path inside the repository",
			},
			&cli.StringFlag{
				Name:  "sheet",
				Usage: "Sheet of the index to search",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Results per page",
			},
			&cli.StringFlag{
				Name:  "placeholder",
				Usage: "Text shown in the empty search field",
			},
			&cli.StringFlag{
				Name:    "api-base",
				Usage:   "Base URL of the search service",
				Sources: cli.EnvVars(config.EnvAPIBase),
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write the log",
				Value: "searchbox.log",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Write the effective settings back to the config file",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "searchbox: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	// Set up logging
	logFile, err := os.OpenFile(c.String("log-file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()

	// Events reach the UI through a channel until the program is running
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("%s error: %s: %v", event.Lane, event.Message, event.Err)
		}
		forwardEvent(e)
	})
	bus.Subscribe(eventbus.EventConfigLoaded, forwardEvent)
	bus.Subscribe(eventbus.EventConfigSaved, forwardEvent)

	configSvc := config.NewConfigServiceWithBus(c.String("config"), bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	applyFlags(cfg, c)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Bool("save") {
		if err := configSvc.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		log.Printf("Config saved to %s", configSvc.Path())
	}

	client := searchapi.NewFromConfig(cfg)
	log.Printf("Searching %s%s (limit %d) via %s", cfg.Repo, cfg.Path, client.Limit(), cfg.APIBase)

	uiModel := ui.NewModel(bus, cfg, client)
	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	uiModel.SetProgram(p)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	log.Printf("Starting UI...")
	_, err = p.Run()
	uiModel.Close()
	bus.Close()
	close(eventChan)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// applyFlags overrides file settings with the flags given on the command line
func applyFlags(cfg *config.Config, c *cli.Command) {
	options := map[string]string{}
	for _, name := range []string{"repo", "path", "sheet", "placeholder"} {
		if c.IsSet(name) {
			options[name] = c.String(name)
		}
	}
	if c.IsSet("limit") {
		options["limit"] = fmt.Sprint(c.Int("limit"))
	}
	flags := config.FromOptions(options)

	if c.IsSet("repo") {
		cfg.Repo = flags.Repo
	}
	if c.IsSet("path") {
		cfg.Path = flags.Path
	}
	if c.IsSet("sheet") {
		cfg.Sheet = flags.Sheet
	}
	if c.IsSet("placeholder") && flags.Placeholder != config.DefaultPlaceholder {
		cfg.Placeholder = flags.Placeholder
	}
	if c.IsSet("limit") {
		cfg.Limit = flags.Limit
	}
	if c.IsSet("api-base") {
		cfg.APIBase = c.String("api-base")
	}
}
