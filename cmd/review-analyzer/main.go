// Command review-analyzer runs the full review-insight pipeline over a JSON
// review dataset and writes the analysis result as JSON.
//
// With -offline the oracle is never contacted and every stage uses its
// deterministic fallback, which is useful for smoke-testing datasets without
// an API key.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/theimaginaryfoundation/review-radar/insights"
	"github.com/theimaginaryfoundation/review-radar/insights/provider"
	"github.com/theimaginaryfoundation/review-radar/reviewio"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	var gen insights.Generator
	if cfg.Offline {
		gen = offlineGenerator{}
	} else {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key, or use -offline)")
			os.Exit(2)
		}
		gen = provider.New(apiKey, cfg.Model)
	}

	log, err := newLogger(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	reviews, err := reviewio.ReadReviews(cfg.InPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	pipeline, err := insights.NewPipeline(insights.Options{
		Gen:         gen,
		Log:         log,
		Concurrency: cfg.Concurrency,
		MaxInsights: cfg.MaxInsights,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	result, err := pipeline.Analyze(ctx, insights.AnalyzeInput{
		AppName: cfg.AppName,
		Store:   cfg.Store,
		Reviews: reviews,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := reviewio.WriteAnalysis(cfg.OutPath, result, cfg.Pretty); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "reviews=%d insights=%d themes=%d out=%s\n",
		len(reviews), len(result.Insights), len(result.Themes), cfg.OutPath)
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.InPath, "in", "", "path to reviews JSON file (array of {text,rating,date})")
	fs.StringVar(&cfg.OutPath, "out", "", "path to write analysis JSON")
	fs.StringVar(&cfg.AppName, "app", "", "app display name")
	fs.StringVar(&cfg.Store, "store", "", "store display name")
	fs.StringVar(&cfg.Model, "model", "gpt-5-mini", "oracle model name")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (defaults to OPENAI_API_KEY)")
	fs.StringVar(&cfg.LogMode, "log", "dev", "log mode: dev or prod")
	fs.BoolVar(&cfg.Pretty, "pretty", true, "indent output JSON")
	fs.BoolVar(&cfg.Offline, "offline", false, "skip the oracle and use deterministic fallbacks")
	fs.DurationVar(&cfg.Timeout, "timeout", 5*time.Minute, "overall analysis deadline (0 disables)")
	fs.IntVar(&cfg.Concurrency, "concurrency", 0, "concurrent per-cluster oracle calls (0 = default)")
	fs.IntVar(&cfg.MaxInsights, "max-insights", 0, "cap on returned insights (0 = default)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// offlineGenerator refuses every call so all stages take their documented
// fallback paths.
type offlineGenerator struct{}

func (offlineGenerator) Generate(context.Context, insights.GenerateRequest) ([]byte, error) {
	return nil, errors.New("offline mode: oracle disabled")
}
