package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hupe1980/agnostic"
	"github.com/hupe1980/agnostic/blobstore"
	minioblob "github.com/hupe1980/agnostic/blobstore/minio"
	s3blob "github.com/hupe1980/agnostic/blobstore/s3"
	"github.com/hupe1980/agnostic/codec"
	"github.com/hupe1980/agnostic/report"
	"github.com/hupe1980/agnostic/resource"
)

// reportPrefix is where reports go in a remote dump bucket.
const reportPrefix = "reports"

// Main runs program with args and returns the process exit code: 2 for
// a malformed command line, 1 for a failed run.
func Main(ctx context.Context, program string, args []string, stdout, stderr io.Writer) int {
	cfg, err := Parse(program, args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := Run(ctx, cfg, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// Run executes one benchmark described by cfg.
func Run(ctx context.Context, cfg *Config, stdout, stderr io.Writer) error {
	opts, err := Options(ctx, cfg, stdout, stderr)
	if err != nil {
		return err
	}

	runner := agnostic.NewRunner(opts...)

	switch cfg.Program {
	case agnostic.ProgramMagnitude:
		_, err = runner.RunMagnitude(ctx, cfg.Size)
	case agnostic.ProgramGradient:
		_, err = runner.RunGradient(ctx, cfg.Size)
	default:
		err = fmt.Errorf("unknown program %q", cfg.Program)
	}
	return err
}

// workers resolves -workers 0 to GOMAXPROCS so the runner's shard count
// and the controller's worker slots agree.
func (c *Config) workers() int {
	if c.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// Options translates cfg into Runner options, connecting to the
// configured stores.
func Options(ctx context.Context, cfg *Config, stdout, stderr io.Writer) ([]agnostic.Option, error) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := agnostic.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	workers := cfg.workers()
	rc := resource.NewController(resource.Config{
		MaxWorkers:         int64(workers),
		MemoryLimitBytes:   cfg.MemLimit,
		IOLimitBytesPerSec: cfg.IOLimit,
	})

	opts := []agnostic.Option{
		agnostic.WithLogger(logger),
		agnostic.WithWorkers(workers),
		agnostic.WithVerify(cfg.Verify),
		agnostic.WithCompression(cfg.Compression),
		agnostic.WithResourceController(rc),
	}

	if cfg.JSON {
		opts = append(opts, agnostic.WithSink(report.NewEncodedSink(stdout, codec.JSON{})))
	} else {
		opts = append(opts, agnostic.WithSink(banner(stderr)))
	}

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg == nil {
			c, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
			}
			awsCfg = &c
		}
		return *awsCfg, nil
	}

	var store blobstore.Store
	switch {
	case cfg.MinioEndpoint != "":
		client, err := minioblob.Dial(cfg.MinioEndpoint, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), cfg.MinioTLS)
		if err != nil {
			return nil, fmt.Errorf("connect to MinIO: %w", err)
		}
		if err := minioblob.EnsureBucket(ctx, client, cfg.S3Bucket); err != nil {
			return nil, fmt.Errorf("bucket %s: %w", cfg.S3Bucket, err)
		}
		store = minioblob.NewStore(client, cfg.S3Bucket, "")
	case cfg.S3Bucket != "":
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		store = s3blob.NewStore(s3.NewFromConfig(c), cfg.S3Bucket, "")
	case cfg.Dump != "":
		opts = append(opts, agnostic.WithDump(blobstore.NewLocalStore(cfg.Dump), ""))
	}

	if store != nil {
		opts = append(opts,
			agnostic.WithDump(store, strings.Trim(cfg.Dump, "/")),
			agnostic.WithSink(report.NewBlobSink(store, reportPrefix, codec.Default, rc)),
		)
	}

	if cfg.DDBTable != "" {
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		opts = append(opts, agnostic.WithSink(report.NewDynamoSink(dynamodb.NewFromConfig(c), cfg.DDBTable, codec.Default)))
	}

	return opts, nil
}

// banner prints the report the way the reference programs did:
// a "Program size" line, the timing lines and an empty line.
func banner(w io.Writer) report.Sink {
	return report.SinkFunc(func(_ context.Context, r *report.Report) error {
		title := strings.ToUpper(r.Program[:1]) + r.Program[1:]
		if _, err := fmt.Fprintf(w, "%s %d\n", title, r.Size); err != nil {
			return err
		}
		if _, err := r.WriteTo(w); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	})
}
