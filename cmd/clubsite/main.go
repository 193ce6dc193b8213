package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"clubsite/internal/build"
	"clubsite/internal/config"
	appLog "clubsite/internal/log"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	srcDir     string
	outDir     string
	cronSpec   string
	verbose    bool
}

func main() {
	flags := parseFlags()
	if flags.verbose {
		appLog.SetLevel(appLog.LevelDebug)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI -out overrides the configured output directory if provided.
	if flags.outDir != "" {
		conf.OutputDir = flags.outDir
	}

	appLog.Info("effective config",
		"site_url", conf.SiteURL,
		"timezone", conf.Timezone,
		"output_dir", conf.OutputDir,
		"content_files", len(conf.ContentFiles),
		"exclusions", len(conf.Exclude),
		"cron", flags.cronSpec,
	)

	builder := build.New(conf)

	if flags.cronSpec == "" {
		if err := builder.Run(flags.srcDir); err != nil {
			appLog.Error("build failed", err)
			os.Exit(1)
		}
		return
	}

	// Scheduled mode: run one build now, then rebuild on the cron schedule
	// until SIGINT/SIGTERM. Each run is a full sequential rebuild.
	if err := builder.Run(flags.srcDir); err != nil {
		appLog.Error("build failed", err)
	}

	// Skip a tick outright if the previous build is still running; a build
	// is a full rebuild anyway, so a dropped activation loses nothing.
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(flags.cronSpec, func() {
		if err := builder.Run(flags.srcDir); err != nil {
			appLog.Error("scheduled build failed", err)
		}
	}); err != nil {
		appLog.Error("invalid cron spec", err, "cron", flags.cronSpec)
		os.Exit(1)
	}
	c.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLog.Info("signal received, shutting down", "signal", sig.String())

	// Wait for an in-flight build to finish before exiting.
	<-c.Stop().Done()
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "donotbuild.yaml", "Path to build config file")
	flag.StringVar(&cfg.srcDir, "src", ".", "Site source directory")
	flag.StringVar(&cfg.outDir, "out", "", "Output directory (overrides config if set)")
	flag.StringVar(&cfg.cronSpec, "cron", "", "Cron schedule for periodic rebuilds (single run if empty)")
	flag.BoolVar(&cfg.verbose, "v", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
