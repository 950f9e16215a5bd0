// acta-excel generates "acta de conformidad" workbooks from project photos.
//
// Three modes:
//
//	acta-excel --input request.json       generate one workbook
//	acta-excel --fake ./demo              generate a demo project with placeholder photos
//	acta-excel --serve                    serve POST /api/excel/generar_excel
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/orayew2002/acta-excel/assets"
	"github.com/orayew2002/acta-excel/config"
	"github.com/orayew2002/acta-excel/corrector"
	"github.com/orayew2002/acta-excel/domain"
	"github.com/orayew2002/acta-excel/processor"
	"github.com/orayew2002/acta-excel/server"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		input      string
		fakeDir    string
		fakePhotos []int
		serve      bool
	)

	flags := pflag.NewFlagSet("acta-excel", pflag.ContinueOnError)
	flags.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVarP(&input, "input", "i", "", "generate from this request JSON file")
	flags.StringVar(&fakeDir, "fake", "", "generate a demo project in this folder")
	flags.IntSliceVar(&fakePhotos, "fake-photos", []int{8, 3, 0, 6, 1, 2, 7, 4}, "demo photo count per category")
	flags.BoolVar(&serve, "serve", false, "serve the HTTP API")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := cfg.Log.Logger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := processor.New(processor.Config{
		Timeout:  cfg.Generation.Timeout.Std(),
		Workers:  cfg.Generation.Workers,
		LogoPath: cfg.Generation.LogoPath,
	}, corrector.New(corrector.Config{
		URL:      cfg.Corrector.URL,
		Timeout:  cfg.Corrector.Timeout.Std(),
		RetryMax: cfg.Corrector.RetryMax,
	}, logger.With().Str("component", "corrector").Logger()), logger)

	switch {
	case serve:
		srv := server.New(cfg.Server.Port, cfg.Generation.Timeout.Std()+cfg.Corrector.Timeout.Std(), p, logger)
		return srv.Run(ctx)
	case input != "":
		req, err := readRequest(input)
		if err != nil {
			return err
		}
		return generate(ctx, p, req, logger)
	case fakeDir != "":
		if err := os.MkdirAll(fakeDir, 0o755); err != nil {
			return err
		}
		req := domain.FakeRequest(fakeDir, fakePhotos)
		if err := assets.SeedPlaceholders(req); err != nil {
			return fmt.Errorf("seed photos: %w", err)
		}
		return generate(ctx, p, req, logger)
	default:
		fmt.Fprintf(os.Stderr, "usage: acta-excel [--config FILE] (--input FILE | --fake DIR | --serve)\n%s", flags.FlagUsages())
		return errors.New("no mode selected")
	}
}

func readRequest(path string) (domain.Request, error) {
	var req domain.Request
	data, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("decode %s: %w", path, err)
	}
	return req, nil
}

func generate(ctx context.Context, p *processor.Processor, req domain.Request, logger zerolog.Logger) error {
	res, err := p.Generate(ctx, req)
	if err != nil {
		return err
	}
	logger.Info().Interface("instances", res.Instances).Msg("done")
	fmt.Println(res.FilePath)
	return nil
}
