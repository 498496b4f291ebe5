package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"resume-agent/internal/acquire"
	"resume-agent/internal/extract"
	"resume-agent/internal/llm"
	openai "resume-agent/internal/llm/openai"
	"resume-agent/internal/pipeline"
	"resume-agent/internal/render"
	"resume-agent/internal/shared/config"
	"resume-agent/internal/shared/retry"
	"resume-agent/internal/shared/telemetry"
	"resume-agent/internal/tailor"
	"resume-agent/internal/validate"
)

func main() {
	cfg := config.Load()

	indexPath := flag.String("index", cfg.ResumeIndexPath, "Path to resume index JSON")
	outPath := flag.String("out", "", "Path to write tailored resume JSON (default OUTPUT_DIR/tailored_resume.json)")
	docxPath := flag.String("docx", "", "Also render a .docx to this path (optional)")
	gdocTitle := flag.String("gdoc", "", "Also push a Google Doc with this title (optional)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	concurrency := flag.Int("concurrency", 0, "Max roles tailored in parallel (0 uses the default)")
	verbose := flag.Bool("v", false, "Verbose telemetry")
	flag.Parse()

	telemetry.SetVerbose(*verbose)

	if flag.NArg() != 1 {
		exitErr("usage: tailor [flags] <job-description-url-or-file>")
	}
	jdSource := flag.Arg(0)

	if *outPath == "" {
		*outPath = filepath.Join(cfg.OutputDir, "tailored_resume.json")
	}

	client, err := buildClient(cfg, *provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.MaxRetries

	extractor := extract.NewExtractor(client)
	extractor.Retry = retryCfg
	tailorer := tailor.NewTailorer(client)
	tailorer.Retry = retryCfg
	if *concurrency > 0 {
		tailorer.Concurrency = *concurrency
	}
	fetcher := acquire.NewFetcher(cfg.RequestTimeout, cfg.UserAgent)
	fetcher.Retry = retryCfg

	p := pipeline.New(fetcher, extractor, tailorer, *indexPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx, jdSource)
	if err != nil {
		exitErr(describeFailure(err))
	}

	if err := render.WriteJSON(result.Tailored, *outPath); err != nil {
		exitErr(fmt.Sprintf("write %s: %v", *outPath, err))
	}
	fmt.Printf("wrote %s\n", *outPath)

	// Optional renders report failures but never discard the JSON artifact.
	if *docxPath != "" {
		if err := render.WriteDOCX(result.Tailored, *docxPath); err != nil {
			fmt.Fprintf(os.Stderr, "docx render failed: %v\n", err)
		} else {
			fmt.Printf("wrote %s\n", *docxPath)
		}
	}
	if *gdocTitle != "" {
		gd, err := render.NewGoogleDocs(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleTokenPath)
		if err == nil {
			var docURL string
			docURL, err = gd.Push(ctx, *gdocTitle, result.Tailored)
			if err == nil {
				fmt.Printf("pushed %s\n", docURL)
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "google doc push failed: %v\n", err)
		}
	}

	printSummary(result)
}

func buildClient(cfg config.Config, provider, model string) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "openai":
		if err := cfg.ValidateLLM(); err != nil {
			return nil, err
		}
		return openai.NewClient(cfg.OpenAIAPIKey, model, cfg.Temperature, openai.WithTimeout(cfg.LLMTimeout))
	case "placeholder":
		return llm.PlaceholderClient{}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// describeFailure names the stage that failed so the operator knows where
// to look without reading the full chain.
func describeFailure(err error) string {
	var acqErr *acquire.Error
	var extErr *extract.Error
	var tailErr *tailor.Error
	var fabErr *validate.FabricationError
	switch {
	case errors.As(err, &acqErr):
		return fmt.Sprintf("could not acquire the job description: %v", acqErr)
	case errors.As(err, &extErr):
		return fmt.Sprintf("structured extraction failed: %v", extErr)
	case errors.As(err, &tailErr):
		return fmt.Sprintf("tailoring failed: %v", tailErr)
	case errors.As(err, &fabErr):
		return fmt.Sprintf("aborting, output not written: %v", fabErr)
	default:
		return err.Error()
	}
}

func printSummary(result pipeline.Result) {
	fmt.Printf("base resume: %s (%s)\n", result.SelectedID, result.SelectedLabel)
	if result.LowMatch {
		fmt.Println("note: low keyword match; tailoring stayed conservative")
	}
	if n := result.Tailored.RevisionCount(); n > 0 {
		fmt.Printf("%d bullet(s) flagged for revision:\n", n)
		for _, role := range result.Tailored.Roles {
			for _, b := range role.Bullets {
				if b.NeedsRevision {
					fmt.Printf("  - [%s] %s\n", role.Company, b.RevisionNote)
				}
			}
		}
	}
	if len(result.Tailored.GapsToConfirm) > 0 {
		fmt.Println("gaps to confirm:")
		for _, gap := range result.Tailored.GapsToConfirm {
			fmt.Printf("  - %s\n", gap)
		}
	}
	for _, q := range result.Tailored.QuestionsForUser {
		fmt.Printf("question: %s\n", q)
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
