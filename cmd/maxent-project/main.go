// Command maxent-project reconstructs the predictions of a fitted maximum
// entropy model over a table of predictor samples. It reads a YAML run
// configuration naming the lambdas file, the samples CSV and the output
// path, and optionally renders the predictions as an HTML grid.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"

	maxent "github.com/aouyang1/go-maxent"
	"github.com/aouyang1/go-maxent/lambdas"
	"github.com/aouyang1/go-maxent/predictors"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML run configuration")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to the working directory")
	flag.Parse()

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := LoadFromYAML(configPath)
	if err != nil {
		return err
	}

	model, err := lambdas.ParseFile(cfg.Lambdas)
	if err != nil {
		return fmt.Errorf("lambdas %s, %w", cfg.Lambdas, err)
	}
	fmt.Printf("model: %d terms over variables %v\n", len(model.Terms), model.Variables())

	csvOpts := predictors.NewDefaultCSVOptions()
	if cfg.NoData != "" {
		csvOpts.NoData = cfg.NoData
	}
	csvOpts.Categorical = cfg.Categorical
	csvOpts.Drop = cfg.Drop

	table, err := predictors.ReadCSVFile(cfg.Samples, csvOpts)
	if err != nil {
		return fmt.Errorf("samples %s, %w", cfg.Samples, err)
	}
	fmt.Printf("samples: %d locations, columns %v\n", table.Len(), table.Names())

	opt := maxent.NewDefaultOptions()
	if cfg.Workers > 0 {
		opt.Workers = cfg.Workers
	}
	if cfg.BatchSize > 0 {
		opt.BatchSize = cfg.BatchSize
	}

	proj, err := maxent.New(model, opt)
	if err != nil {
		return err
	}
	res, err := proj.Project(table)
	if err != nil {
		return err
	}

	if err := res.WriteCSVFile(cfg.Output); err != nil {
		return fmt.Errorf("output %s, %w", cfg.Output, err)
	}
	fmt.Printf("wrote %d predictions to %s\n", res.Len(), cfg.Output)

	if cfg.Chart.Path != "" {
		if err := res.PlotGrid(cfg.Chart.Path, cfg.Chart.Width, cfg.Chart.Height); err != nil {
			return fmt.Errorf("chart %s, %w", cfg.Chart.Path, err)
		}
		fmt.Printf("wrote suitability chart to %s\n", cfg.Chart.Path)
	}
	return nil
}
