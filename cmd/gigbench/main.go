package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/kazz187/gigbench/internal/agent"
	"github.com/kazz187/gigbench/internal/bench"
	"github.com/kazz187/gigbench/internal/config"
	"github.com/kazz187/gigbench/internal/dataset"
	"github.com/kazz187/gigbench/internal/transfer"
	"github.com/kazz187/gigbench/pkg/clog"
)

var (
	app = kingpin.New("gigbench", "Benchmark harness for agents completing freelance-style projects")

	qualifyCmd         = app.Command("qualify", "Run the qualification agent over projects and log statistics")
	qualifyDataDir     = qualifyCmd.Flag("data-dir", "Directory containing the projects subtree").Required().String()
	qualifyLimit       = qualifyCmd.Flag("limit", "Maximum number of projects to process").Default("0").Int()
	qualifyParallelism = qualifyCmd.Flag("parallelism", "Number of projects to process in parallel").Default("1").Int()
	qualifyModel       = qualifyCmd.Flag("model", "Named model selector (default model if not specified)").String()
	qualifyTimeout     = qualifyCmd.Flag("timeout", "Maximum seconds to wait before timing out an agent run").Default("60").Int()
	qualifyRetries     = qualifyCmd.Flag("max-retries", "Extra attempts a timed-out agent run gets").Default("3").Int()

	submitCmd         = app.Command("submit", "Run the submission agent over projects and log statistics")
	submitDataDir     = submitCmd.Flag("data-dir", "Directory containing the projects subtree").Required().String()
	submitDest        = submitCmd.Flag("submission-dir", "Directory where submissions are placed").Required().String()
	submitLimit       = submitCmd.Flag("limit", "Maximum number of projects to process").Default("0").Int()
	submitParallelism = submitCmd.Flag("parallelism", "Number of projects to process in parallel").Default("1").Int()
	submitModel       = submitCmd.Flag("model", "Named model selector (default model if not specified)").String()
	submitTimeout     = submitCmd.Flag("timeout", "Maximum seconds to wait before timing out an agent run").Default("120").Int()
	submitRetries     = submitCmd.Flag("max-retries", "Extra attempts a timed-out agent run gets").Default("3").Int()

	transferCmd      = app.Command("transfer", "Copy qualified projects into a fresh tree based on a prior run's judgments")
	transferDataDir  = transferCmd.Flag("data-dir", "Directory containing the projects data").Required().String()
	transferDest     = transferCmd.Flag("dest-dir", "Destination directory for qualified projects").Required().String()
	transferRunID    = transferCmd.Flag("run", "Run identifier of the qualification run to read judgments from").Required().String()
	transferCriteria = transferCmd.Flag("criteria", "Required criterion name, repeatable; no flags means every project qualifies").Strings()

	datasetCmd     = app.Command("dataset", "Dataset acquisition commands")
	extractCmd     = datasetCmd.Command("extract", "Extract a local dataset archive")
	extractTar     = extractCmd.Flag("tar", "Path to the local tar archive").Required().String()
	extractDataDir = extractCmd.Flag("data-dir", "Directory to extract into").Default("data").String()

	fetchCmd    = datasetCmd.Command("fetch", "Download a dataset archive from S3")
	fetchKey    = fetchCmd.Flag("key", "Object key of the archive").Required().String()
	fetchDest   = fetchCmd.Flag("dest", "Local path to write the archive to").Required().String()
	fetchBucket = fetchCmd.Flag("bucket", "Bucket holding the archive (defaults to GIGBENCH_DATASET_BUCKET)").String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}
	setupLogger(env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := dispatch(ctx, command, env); err != nil {
		slog.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func setupLogger(env *config.Env) {
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))
}

func dispatch(ctx context.Context, command string, env *config.Env) error {
	switch command {
	case qualifyCmd.FullCommand():
		_, err := bench.Run(ctx, bench.Config{
			Role:         agent.RoleQualification,
			DataDir:      *qualifyDataDir,
			Limit:        *qualifyLimit,
			Parallelism:  *qualifyParallelism,
			Timeout:      time.Duration(*qualifyTimeout) * time.Second,
			MaxRetries:   *qualifyRetries,
			Model:        *qualifyModel,
			CriteriaPath: env.CriteriaPath,
			Transcript:   env.Transcript,
		})
		return err
	case submitCmd.FullCommand():
		_, err := bench.Run(ctx, bench.Config{
			Role:          agent.RoleSubmission,
			DataDir:       *submitDataDir,
			SubmissionDir: *submitDest,
			Limit:         *submitLimit,
			Parallelism:   *submitParallelism,
			Timeout:       time.Duration(*submitTimeout) * time.Second,
			MaxRetries:    *submitRetries,
			Model:         *submitModel,
			Transcript:    env.Transcript,
		})
		return err
	case transferCmd.FullCommand():
		count, err := transfer.Run(transfer.Options{
			DataDir:  *transferDataDir,
			DestDir:  *transferDest,
			RunID:    *transferRunID,
			Criteria: *transferCriteria,
		})
		if err != nil {
			return err
		}
		slog.Info("transfer complete", "transferred", count, "dest_dir", *transferDest)
		return nil
	case extractCmd.FullCommand():
		_, err := dataset.Extract(*extractTar, *extractDataDir)
		return err
	case fetchCmd.FullCommand():
		bucket := *fetchBucket
		if bucket == "" {
			bucket = env.DatasetBucket
		}
		fetcher, err := dataset.NewFetcher(ctx, bucket, env.DatasetRegion)
		if err != nil {
			return err
		}
		return fetcher.Fetch(ctx, *fetchKey, *fetchDest)
	default:
		return nil
	}
}
