// Command statusreport renders knowledge-base document rows as a status
// report. Rows are read as a JSON array or newline-delimited JSON.
// Usage: statusreport -in docs.json -format xlsx -status failed,processing
// Output: {prefix}_{YYYY-MM-DD}_{run id}.{format} unless -out is given; "-" writes to stdout.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docstatus/internal/config"
	"docstatus/internal/domain"
	"docstatus/internal/format"
	"docstatus/internal/logger"
	"docstatus/internal/report"
)

type options struct {
	in       string
	out      string
	format   string
	statuses []domain.ProcessingStatus
	badges   bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	zl, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if opts.badges {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(format.Badges())
	}

	dates, err := format.NewDateFormatter(&cfg.Format)
	if err != nil {
		return fmt.Errorf("failed to build date formatter: %w", err)
	}

	runID := uuid.New()
	zl = zl.With(zap.String("run_id", runID.String()))
	start := time.Now()

	docs, err := readDocuments(opts.in, stdin, dates)
	if err != nil {
		return err
	}
	docs = report.Filter(docs, opts.statuses...)

	outPath := opts.out
	if outPath == "" {
		outPath = report.BuildFilename(cfg.Report.FilenamePrefix, opts.format, start, runID)
	}
	if err := writeReport(outPath, stdout, opts.format, docs, dates, cfg.Report.SheetName); err != nil {
		return err
	}

	summary := report.Summarize(docs)
	fields := []zap.Field{
		zap.String("output", outPath),
		zap.String("format", opts.format),
		zap.Int("rows", summary.Total),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	}
	for _, c := range summary.Counts {
		fields = append(fields, zap.Int(c.Descriptor.Name, c.Count))
	}
	zl.Info("status report written", fields...)
	return nil
}

func parseFlags(args []string, cfg *config.Config) (*options, error) {
	fs := flag.NewFlagSet("statusreport", flag.ContinueOnError)
	in := fs.String("in", "", "input file with document rows (default stdin)")
	out := fs.String("out", "", `output file; "-" for stdout`)
	outFormat := fs.String("format", cfg.Report.Format, "report format: xlsx or csv")
	statuses := fs.String("status", "", "comma-separated statuses to include (name, label, code or unknown)")
	badges := fs.Bool("badges", false, "print the status badge catalog as JSON and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &options{in: *in, out: *out, format: strings.ToLower(*outFormat), badges: *badges}
	switch opts.format {
	case "xlsx", "csv":
	default:
		return nil, fmt.Errorf("invalid -format %q: want xlsx or csv", *outFormat)
	}

	for _, name := range strings.Split(*statuses, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.EqualFold(name, "unknown") {
			opts.statuses = append(opts.statuses, domain.StatusUnknown)
			continue
		}
		code, err := domain.ParseStatusName(name)
		if err != nil {
			return nil, fmt.Errorf("invalid -status: %w", err)
		}
		opts.statuses = append(opts.statuses, code)
	}
	return opts, nil
}

func readDocuments(path string, stdin io.Reader, dates *format.DateFormatter) ([]domain.Document, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	docs, err := report.NewDecoder(dates).Decode(r)
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	return docs, nil
}

func writeReport(path string, stdout io.Writer, outFormat string, docs []domain.Document, dates *format.DateFormatter, sheet string) (err error) {
	var w io.Writer = stdout
	if path != "-" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("create output file: %w", cerr)
		}
		defer func() {
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("close output file: %w", closeErr)
			}
			if err != nil {
				_ = os.Remove(path)
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	switch outFormat {
	case "csv":
		err = report.WriteCSV(bw, docs, dates)
	default:
		err = report.WriteXLSX(bw, docs, dates, sheet)
	}
	if err != nil {
		return fmt.Errorf("write %s report: %w", outFormat, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
