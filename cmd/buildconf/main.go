package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/buildconf/internal/application"
	"github.com/eugenenazirov/buildconf/internal/compiler"
	"github.com/eugenenazirov/buildconf/internal/config"
	"github.com/eugenenazirov/buildconf/internal/logging"
)

var signalNotify = signal.Notify

type cli struct {
	app *kingpin.Application

	configFile *string
	solidity   *string
	networks   *[]string
	presets    *[]string
	logLevel   *string

	show   *kingpin.CmdClause
	format *string

	validate *kingpin.CmdClause

	serve              *kingpin.CmdClause
	port               *string
	rateLimitRPSFlag   *float64
	rateLimitBurstFlag *int
}

func newCLI() *cli {
	c := &cli{
		app: kingpin.New("buildconf", "Build configuration for the Solidity toolchain - resolves the compiler version and deployment networks"),
	}
	c.configFile = c.app.Flag("config", "Path to YAML configuration file").String()
	c.solidity = c.app.Flag("solidity", "Solidity compiler version (major.minor.patch)").String()
	c.networks = c.app.Flag("network", "Network definition name=url,chainId (repeatable)").Strings()
	c.presets = c.app.Flag("preset", "Add a built-in network preset (repeatable)").Enums(config.PresetNames()...)
	c.logLevel = c.app.Flag("log-level", "Log level (debug, info, warn, error)").String()

	c.show = c.app.Command("show", "Print the resolved configuration").Default()
	c.format = c.show.Flag("format", "Output format").Default("yaml").Enum("yaml", "json")

	c.validate = c.app.Command("validate", "Check the configuration and the compiler version")

	c.serve = c.app.Command("serve", "Expose the configuration over HTTP")
	c.port = c.serve.Flag("port", "HTTP port exposed by the service").String()
	c.rateLimitRPSFlag = c.serve.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	c.rateLimitBurstFlag = c.serve.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	return c
}

func (c *cli) buildOverrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: *c.configFile,
		Networks:   *c.networks,
		Presets:    *c.presets,
	}
	if *c.solidity != "" {
		overrides.Solidity = c.solidity
	}
	return overrides
}

func (c *cli) serverOverrides() *config.ServerOverrides {
	overrides := &config.ServerOverrides{}
	if *c.port != "" {
		overrides.Port = c.port
	}
	if *c.rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = c.rateLimitRPSFlag
	}
	if *c.rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = c.rateLimitBurstFlag
	}
	if *c.logLevel != "" {
		overrides.LogLevel = c.logLevel
	}
	return overrides
}

func main() {
	c := newCLI()
	command := kingpin.MustParse(c.app.Parse(os.Args[1:]))

	if command == c.serve.FullCommand() {
		runServe(c)
		return
	}

	if err := run(c, command, os.Stdout); err != nil {
		c.app.Fatalf("%v", err)
	}
}

// run executes the show and validate commands.
func run(c *cli, command string, out io.Writer) error {
	cfg, err := config.Load(c.buildOverrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	switch command {
	case c.validate.FullCommand():
		version, err := compiler.Check(cfg.CompilerVersion)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "ok: solc %s, %d network(s)\n", version, len(cfg.Networks))
		return err
	default:
		return writeConfig(out, cfg, *c.format)
	}
}

func writeConfig(out io.Writer, cfg config.BuildConfiguration, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

func runServe(c *cli) {
	serverCfg, err := config.LoadServer(c.serverOverrides())
	if err != nil {
		panic(fmt.Sprintf("failed to load server configuration: %v", err))
	}

	logger, err := logging.New(serverCfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	build, err := config.Load(c.buildOverrides())
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if _, err := compiler.Check(build.CompilerVersion); err != nil {
		logger.Fatal("unsupported compiler version", zap.String("version", build.CompilerVersion), zap.Error(err))
	}

	app, err := application.New(build, serverCfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	logger.Info("configuration loaded",
		zap.String("solidity", build.CompilerVersion),
		zap.Strings("networks", build.NetworkNames()),
	)

	shutdown(app.Server(), serverCfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
