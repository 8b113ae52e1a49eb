package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/agnostic/legacy"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage error")

// Config is the parsed command line.
type Config struct {
	Program       string
	Size          int
	Workers       int
	Dump          string
	Compression   legacy.Compression
	S3Bucket      string
	MinioEndpoint string
	MinioTLS      bool
	DDBTable      string
	JSON          bool
	Verify        bool
	Verbose       bool
	IOLimit       int64
	MemLimit      int64
}

// Parse parses args (without the program name). The grid size is taken
// from -n or from a single positional argument.
func Parse(program string, args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{Program: program}

	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] [array size]\n", program)
		fs.PrintDefaults()
	}

	var compression string
	fs.IntVar(&cfg.Size, "n", 0, "grid size (n x n points per slab)")
	fs.IntVar(&cfg.Workers, "workers", 1, "kernel shards (0 = GOMAXPROCS)")
	fs.StringVar(&cfg.Dump, "dump", "", "validation dump directory, or key prefix with -s3-bucket")
	fs.StringVar(&compression, "compression", "none", "dump framing: none, zstd or lz4")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", "", "bucket for dumps and reports")
	fs.StringVar(&cfg.MinioEndpoint, "minio-endpoint", "", "use a MinIO server for -s3-bucket (credentials from MINIO_ACCESS_KEY and MINIO_SECRET_KEY)")
	fs.BoolVar(&cfg.MinioTLS, "minio-tls", false, "connect to MinIO over TLS")
	fs.StringVar(&cfg.DDBTable, "ddb-table", "", "DynamoDB table receiving reports")
	fs.BoolVar(&cfg.JSON, "json", false, "print the report as JSON on stdout")
	fs.BoolVar(&cfg.Verify, "verify", false, "compare every layout against the pointer result")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	fs.Int64Var(&cfg.IOLimit, "io-limit", 0, "upload limit in bytes per second (0 = unlimited)")
	fs.Int64Var(&cfg.MemLimit, "mem-limit", 0, "buffer memory limit in bytes (0 = unlimited)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	switch fs.NArg() {
	case 0:
	case 1:
		n, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			fs.Usage()
			return nil, fmt.Errorf("%w: array size %q: %w", ErrUsage, fs.Arg(0), err)
		}
		cfg.Size = n
	default:
		fs.Usage()
		return nil, fmt.Errorf("%w: too many arguments", ErrUsage)
	}

	if cfg.Size == 0 {
		fs.Usage()
		return nil, fmt.Errorf("%w: missing array size", ErrUsage)
	}

	c, err := legacy.ParseCompression(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	cfg.Compression = c

	if cfg.MinioEndpoint != "" && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("%w: -minio-endpoint requires -s3-bucket", ErrUsage)
	}

	return cfg, nil
}
