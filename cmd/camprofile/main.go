package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mhold3n/CamProV5-sub001/core"
	"github.com/mhold3n/CamProV5-sub001/internal/logging"
	"github.com/mhold3n/CamProV5-sub001/model"
)

func main() {
	paramsPath := flag.String("params", "", "Path to a JSON parameter file; \"-\" reads stdin, empty uses defaults")
	outPath := flag.String("out", "", "Output path; empty writes to stdout")
	format := flag.String("format", "json", "Output format: json or csv")
	refDir := flag.String("ref-dir", "", "Directory of reference curve files for ratio calibration")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	params, err := loadParams(*paramsPath)
	if err != nil {
		log.Error(ctx, "failed to load parameters", logging.String("error", err.Error()))
		os.Exit(1)
	}

	opts := []core.Option{core.WithLogger(log)}
	if *refDir != "" {
		opts = append(opts, core.WithReferenceProvider(core.FileReferenceProvider{Dir: *refDir}))
	}
	engine := core.NewEngine(opts...)

	result, err := engine.BuildTables(ctx, params)
	if err != nil {
		log.Error(ctx, "synthesis failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	for _, check := range result.Preflight.Checks {
		status := "ok"
		if !check.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(os.Stderr, "preflight %-28s %s %s\n", check.Name, status, check.Detail)
	}

	out := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error(ctx, "failed to create output file", logging.String("path", *outPath), logging.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "json":
		err = writeJSON(out, result)
	case "csv":
		err = writeCSV(out, result)
	default:
		err = fmt.Errorf("unsupported format %q", *format)
	}
	if err != nil {
		log.Error(ctx, "failed to write output", logging.String("error", err.Error()))
		os.Exit(1)
	}

	if !result.Preflight.Passed {
		os.Exit(2)
	}
}

func loadParams(path string) (model.UserParams, error) {
	switch path {
	case "":
		return model.DefaultUserParams(), nil
	case "-":
		return model.ParseUserParams(os.Stdin)
	default:
		f, err := os.Open(path)
		if err != nil {
			return model.UserParams{}, err
		}
		defer f.Close()
		return model.ParseUserParams(f)
	}
}

func writeJSON(w io.Writer, result *model.SynthesisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// writeCSV emits the per-angle channels. The transmission ratio shares the
// motion grid and rides along as a fifth column; the 101-point pitch curves
// live on their own parameter grid and are JSON-only.
func writeCSV(w io.Writer, result *model.SynthesisResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"theta_deg", "x_mm", "v_mm_per_omega", "a_mm_per_omega2", "ratio"}); err != nil {
		return err
	}
	for i, s := range result.Motion.Samples {
		ratio := 1.0
		if i < len(result.Transmission.Ratio) {
			ratio = result.Transmission.Ratio[i].Ratio
		}
		row := []string{
			strconv.FormatFloat(s.ThetaDeg, 'g', -1, 64),
			strconv.FormatFloat(s.XMm, 'g', -1, 64),
			strconv.FormatFloat(s.VMmPerOmega, 'g', -1, 64),
			strconv.FormatFloat(s.AMmPerOmega2, 'g', -1, 64),
			strconv.FormatFloat(ratio, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
