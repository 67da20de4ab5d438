// Command email-verifier verifies the email addresses in one column of a
// CSV file over SMTP and writes the results back next to the original rows.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	emailverifier "github.com/devsahil2063/Email-Verifier"
	"github.com/devsahil2063/Email-Verifier/extract"
	"github.com/devsahil2063/Email-Verifier/types"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	// .env provides defaults; flags override.
	_ = godotenv.Load()

	var (
		file    = flag.String("file", "", "input CSV file containing email addresses")
		column  = flag.String("column", envString("VERIFIER_COLUMN", ""), "email column name (auto-detected when empty)")
		output  = flag.String("output", "", "output CSV file (default: <file>-verified.csv)")
		delay   = flag.Duration("delay", envDuration("VERIFIER_DELAY", time.Second), "delay between checks")
		timeout = flag.Duration("timeout", envDuration("VERIFIER_TIMEOUT", 10*time.Second), "SMTP timeout per address")
		sender  = flag.String("sender", envString("VERIFIER_SENDER", "test@example.com"), "placeholder MAIL FROM address")
		helo    = flag.String("helo", envString("VERIFIER_HELO", ""), "EHLO identity (default: local hostname)")
		verbose = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *file == "" {
		flag.PrintDefaults()
		return errors.New("missing required -file argument")
	}

	table, err := loadCSV(*file)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"rows": len(table.Rows), "columns": len(table.Header)}).Info("file loaded")

	col, err := pickColumn(table, *column, log)
	if err != nil {
		return err
	}

	candidates := extract.Addresses(table, col)
	if len(candidates) == 0 {
		return fmt.Errorf("no valid email addresses found in column %q", table.Header[col])
	}
	log.WithField("count", len(candidates)).Info("addresses extracted")

	verifier := emailverifier.New(emailverifier.Options{
		Timeout:           *timeout,
		SenderIdentity:    *sender,
		HeloDomain:        *helo,
		InterAttemptDelay: *delay,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addresses := make([]string, len(candidates))
	for i, c := range candidates {
		addresses[i] = c.Address
	}

	pacing := *delay
	if pacing == 0 {
		pacing = -1 // -delay 0 means no pause between checks
	}

	batch, err := verifier.VerifyBatch(ctx, addresses, emailverifier.BatchOptions{
		InterAttemptDelay: pacing,
		OnProgress: func(p types.Progress) {
			log.WithFields(logrus.Fields{
				"attempted": p.Attempted,
				"valid":     p.Valid,
				"invalid":   p.Invalid,
				"errors":    p.Errors,
				"total":     p.Total,
			}).Info("progress")
		},
	})
	if err != nil {
		return err
	}
	if batch.Partial {
		log.Warn("interrupted: writing partial results")
	}

	byRow := make(map[int]types.VerificationResult, len(batch.Results))
	for i, res := range batch.Results {
		byRow[candidates[i].Row] = res
	}

	outPath := *output
	if outPath == "" {
		outPath = strings.TrimSuffix(*file, ".csv") + "-verified.csv"
	}
	if err := writeCSV(outPath, extract.Attach(table, byRow)); err != nil {
		return err
	}
	log.WithField("file", outPath).Info("results written")

	printSummary(extract.Summarize(batch.Results), batch.Partial)
	return nil
}

// loadCSV reads the file into a Table, skipping fully empty rows the way
// spreadsheet exports tend to produce them.
func loadCSV(path string) (extract.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return extract.Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := r.ReadAll()
	if err != nil {
		return extract.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return extract.Table{}, fmt.Errorf("%s is empty", path)
	}

	t := extract.Table{Header: records[0]}
	for _, row := range records[1:] {
		if !emptyRow(row) {
			t.Rows = append(t.Rows, row)
		}
	}
	return t, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func writeCSV(path string, t extract.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// pickColumn resolves the email column by name, or auto-detects it.
func pickColumn(t extract.Table, name string, log *logrus.Logger) (int, error) {
	if name != "" {
		for i, h := range t.Header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("column %q not found in header %v", name, t.Header)
	}

	cols := extract.DetectEmailColumns(t)
	if len(cols) == 0 {
		return 0, errors.New("no email column detected; specify one with -column")
	}
	if len(cols) > 1 {
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = t.Header[c]
		}
		log.WithField("columns", names).Debug("multiple email columns detected, using the first")
	}
	return cols[0], nil
}

func printSummary(r extract.Report, partial bool) {
	fmt.Println()
	color.New(color.Bold).Println("Verification summary")
	fmt.Printf("  checked:        %d\n", r.Total)
	color.Green("  valid:          %d", r.Valid)
	color.Red("  invalid:        %d", r.Invalid)
	color.Red("  invalid format: %d", r.InvalidFormat)
	color.Yellow("  errors:         %d", r.Errors)
	fmt.Printf("  success rate:   %.1f%%\n", r.SuccessRate)
	if partial {
		color.Yellow("  (partial run - interrupted before all addresses were attempted)")
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
