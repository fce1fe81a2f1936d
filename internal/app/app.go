package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/NivBraz/student-aggregator/internal/aggregator"
	"github.com/NivBraz/student-aggregator/internal/config"
	"github.com/NivBraz/student-aggregator/internal/logger"
	"github.com/NivBraz/student-aggregator/internal/models"
	"github.com/NivBraz/student-aggregator/internal/report"
	"github.com/NivBraz/student-aggregator/pkg/fetcher"
	"github.com/NivBraz/student-aggregator/pkg/parser"
)

// App represents the main application
type App struct {
	config  *config.Config
	fetcher *fetcher.Fetcher
	parser  *parser.Parser
	logger  *logger.Logger

	out      io.Writer
	progress io.Writer
}

// New creates a new instance of the application
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("invalid configuration: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if log == nil {
		log = logger.NewNop()
	}

	fetcherConfig := fetcher.FetcherConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		Timeout:           time.Duration(cfg.HTTPClient.Timeout) * time.Second,
		UserAgent:         cfg.HTTPClient.UserAgent,
		MaxRetries:        cfg.HTTPClient.MaxRetries,
		InitialBackoff:    time.Duration(cfg.HTTPClient.RetryDelay) * time.Second,
	}

	return &App{
		config:   cfg,
		fetcher:  fetcher.New(fetcherConfig),
		parser:   parser.New(),
		logger:   log,
		out:      os.Stdout,
		progress: os.Stderr,
	}, nil
}

// SetOutput redirects the report and the progress bar
func (a *App) SetOutput(out, progress io.Writer) {
	a.out = out
	a.progress = progress
}

// Run fetches the students, aggregates them, prints the report and submits
// the result. Submission is skipped in dry run mode.
func (a *App) Run(ctx context.Context) (*models.AggregateResult, error) {
	startTime := time.Now()

	runID := uuid.NewString()
	log := a.logger.With("run_id", runID)
	ctx = fetcher.WithRequestID(ctx, runID)

	bar := progressbar.NewOptions(3,
		progressbar.OptionSetWriter(a.progress),
		progressbar.OptionSetDescription("Fetching students..."),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer bar.Finish()

	students, err := a.fetchStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	log.Info("Students fetched", "count", len(students))
	bar.Add(1)

	if len(students) == 0 {
		log.Warn("No student retrieved")
		return nil, fmt.Errorf("aggregate: %w", aggregator.ErrEmptyInput)
	}

	bar.Describe("Aggregating...")
	submitter := models.Submitter{
		Name:  a.config.Submitter.Name,
		Email: a.config.Submitter.Email,
	}
	result, err := aggregator.AggregateTop(students, submitter, a.config.Output.TopStudentsCount)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	bar.Add(1)

	if !result.HighestGPAYearFound {
		log.Warn("No student has a positive GPA, reporting year 0")
	}
	if !result.MostInconsistentFound {
		log.Warn("No student has a positive GPA spread, reporting id 0")
	}

	if err := report.Write(a.out, result, a.config.Output.Format, a.config.Output.PrettyPrint); err != nil {
		return result, fmt.Errorf("write report: %w", err)
	}

	if a.config.Output.DryRun {
		log.Info("Dry run, submission skipped", "elapsed", time.Since(startTime))
		bar.Add(1)
		return result, nil
	}

	bar.Describe("Submitting...")
	if err := a.submit(ctx, result); err != nil {
		log.Error("Submission failed", "error", err)
		return result, fmt.Errorf("submit aggregate: %w", err)
	}
	bar.Add(1)
	log.Info("Submission successful", "elapsed", time.Since(startTime))

	return result, nil
}

func (a *App) fetchStudents(ctx context.Context) ([]models.Student, error) {
	content, err := a.fetcher.Fetch(ctx, a.config.API.BaseURL+a.config.API.StudentsPath)
	if err != nil {
		return nil, err
	}
	return a.parser.ParseStudents(content)
}

func (a *App) submit(ctx context.Context, result *models.AggregateResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = a.fetcher.PutJSON(ctx, a.config.API.BaseURL+a.config.API.SubmitPath, body)
	return err
}
