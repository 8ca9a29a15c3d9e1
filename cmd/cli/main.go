package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"librero/cmd/cli/render"
	"librero/internal/config"
	"librero/internal/database"
	"librero/internal/logging"
	"librero/internal/services"
)

type CLI struct {
	Recommend RecommendCmd `cmd:"" aliases:"rec" help:"Get a random book recommendation"`
	ListBooks ListBooksCmd `cmd:"" name:"list-books" aliases:"ls" help:"List the books in the catalog"`
	Import    ImportCmd    `cmd:"" help:"Import books from a CSV export into the database"`

	Config   string `help:"Path to a YAML config file" type:"path"`
	DB       string `name:"db" help:"SQLite catalog path (default: built-in catalog)" type:"path"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn"`

	db *database.DB `kong:"-"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	logOpts := cfg.LoggingOptions()
	logOpts.Level = c.LogLevel
	logOpts.Format = "console"
	logOpts.Output = os.Stderr
	logging.Init(logOpts)

	dbPath := cfg.Database.Path
	if c.DB != "" {
		dbPath = c.DB
	}

	globals := &Globals{
		Engine:       services.NewEngine(nil),
		In:           os.Stdin,
		Out:          os.Stdout,
		Render:       render.NewLipglossRendererAuto(os.Stdout),
		CatalogLimit: cfg.Catalog.DefaultLimit,
	}

	var repo services.CatalogRepository
	if dbPath != "" {
		db, err := database.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		c.db = db
		repo = db
		globals.Store = db
	}
	globals.Catalog = services.NewCatalogService(repo, services.CatalogOptions{
		Timeout:          cfg.Database.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      cfg.Breaker.OpenTimeout,
	})

	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("librero"),
		kong.Description("Albert Camus book recommender"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	if cli.db != nil {
		_ = cli.db.Close()
	}
	ctx.FatalIfErrorf(err)
}
