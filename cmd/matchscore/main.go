package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"resume-agent/internal/acquire"
	"resume-agent/internal/index"
	"resume-agent/internal/shared/config"
	"resume-agent/internal/shared/telemetry"
)

// matchscore prints every index record's keyword score against a job
// description, highest first. Useful for checking index coverage before
// running the full tailor pipeline.
func main() {
	cfg := config.Load()

	indexPath := flag.String("index", cfg.ResumeIndexPath, "Path to resume index JSON")
	verbose := flag.Bool("v", false, "Verbose telemetry")
	flag.Parse()

	telemetry.SetVerbose(*verbose)

	if flag.NArg() != 1 {
		exitErr("usage: matchscore [flags] <job-description-url-or-file>")
	}

	fetcher := acquire.NewFetcher(cfg.RequestTimeout, cfg.UserAgent)
	jdText, err := fetcher.JobDescription(context.Background(), flag.Arg(0))
	if err != nil {
		exitErr(err.Error())
	}

	records, err := index.Load(*indexPath)
	if err != nil {
		exitErr(err.Error())
	}

	selection, err := index.Select(jdText, records)
	if err != nil {
		exitErr(err.Error())
	}

	type scored struct {
		rec   index.Record
		score float64
	}
	rows := make([]scored, 0, len(records))
	for _, rec := range records {
		rows = append(rows, scored{rec: rec, score: selection.Scores[rec.ID]})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })

	for _, row := range rows {
		marker := " "
		if row.rec.ID == selection.Record.ID {
			marker = "*"
		}
		fmt.Printf("%s %6.1f  %s  %s\n", marker, row.score, row.rec.ID, row.rec.Label)
	}
	if selection.LowMatch {
		fmt.Println("\nbest score is below the match threshold; expect conservative tailoring")
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
