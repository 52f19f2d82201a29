package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/config"
	providerfactory "github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider/factory"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/registry"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/router"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/server"
)

const serveUsage = `Usage:
  llm-platform serve [--config <path>] [--port <port>]

Flags:
  --config string   Path to optional YAML configuration file
  --port   int      Override server port from configuration

Provider credentials are read from the environment (or a .env file):
  OPENAI_API_KEY, ANTHROPIC_API_KEY, DEEPSEEK_API_KEY, PERPLEXITY_API_KEY,
  AZURE_OPENAI_API_KEY, AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_DEPLOYMENT,
  ADOBE_API_KEY, CANVA_API_KEY`

func serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, serveUsage)
	}

	var cfgPath string
	var overridePort int
	fs.StringVar(&cfgPath, "config", "", "path to configuration file")
	fs.IntVar(&overridePort, "port", 0, "override server port")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parse serve flags: %w", err)
	}

	// A missing .env file is fine; credentials may come from the real environment.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if overridePort != 0 {
		if overridePort <= 0 || overridePort > 65535 {
			return fmt.Errorf("port override %d must be a valid TCP port", overridePort)
		}
		cfg.Server.Port = overridePort
	}

	reg := registry.New(cfg)
	providers, err := providerfactory.BuildProviders(cfg)
	if err != nil {
		return err
	}

	rt := router.New(reg, providers)

	srv, err := server.New(cfg, rt)
	if err != nil {
		return err
	}

	return srv.Run(ctx)
}
