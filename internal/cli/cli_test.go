package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/hupe1980/agnostic"
	"github.com/hupe1980/agnostic/legacy"
	"github.com/hupe1980/agnostic/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "positional",
			args: []string{"64"},
			want: Config{Program: "magnitude", Size: 64, Workers: 1},
		},
		{
			name: "flags",
			args: []string{"-n", "32", "-workers", "4", "-compression", "zstd", "-verify", "-json", "-dump", "out"},
			want: Config{Program: "magnitude", Size: 32, Workers: 4, Compression: legacy.CompressionZstd, Verify: true, JSON: true, Dump: "out"},
		},
		{
			name: "positional wins",
			args: []string{"-n", "8", "16"},
			want: Config{Program: "magnitude", Size: 16, Workers: 1},
		},
		{
			name: "minio",
			args: []string{"-s3-bucket", "bench", "-minio-endpoint", "localhost:9000", "-v", "8"},
			want: Config{Program: "magnitude", Size: 8, Workers: 1, S3Bucket: "bench", MinioEndpoint: "localhost:9000", Verbose: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("magnitude", tt.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing size", nil},
		{"bad size", []string{"many"}},
		{"two sizes", []string{"8", "9"}},
		{"bad compression", []string{"-compression", "gzip", "8"}},
		{"minio without bucket", []string{"-minio-endpoint", "localhost:9000", "8"}},
		{"unknown flag", []string{"-frobnicate", "8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("gradient", tt.args, &bytes.Buffer{})
			require.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestOptionsWorkers(t *testing.T) {
	tests := []struct {
		name string
		flag string
		want int
	}{
		{name: "default", flag: "1", want: 1},
		{name: "explicit", flag: "3", want: 3},
		{name: "gomaxprocs", flag: "0", want: runtime.GOMAXPROCS(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			cfg, err := Parse(agnostic.ProgramMagnitude, []string{"-workers", tt.flag, "8"}, &stderr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.workers())

			opts, err := Options(context.Background(), cfg, &bytes.Buffer{}, &stderr)
			require.NoError(t, err)

			r := agnostic.NewRunner(opts...)
			assert.Equal(t, tt.want, r.Workers())
			assert.Equal(t, int64(tt.want), r.ResourceController().Config().MaxWorkers)
		})
	}
}

func TestMainText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Main(context.Background(), agnostic.ProgramMagnitude, []string{"-verify", "16"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stderr.String()
	assert.True(t, strings.HasPrefix(out, "Magnitude 16\n"), out)
	assert.Contains(t, out, `"Pointer", `)
	assert.Contains(t, out, `"MappedArray", `)
	assert.True(t, strings.HasSuffix(out, "\n\n"))
	assert.Empty(t, stdout.String())
}

func TestMainJSONWithLocalDump(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := Main(context.Background(), agnostic.ProgramGradient,
		[]string{"-json", "-verify", "-workers", "2", "-compression", "lz4", "-dump", dir, "8"},
		&stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	rep, err := report.Decode(nil, bytes.TrimSpace(stdout.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "gradient", rep.Program)
	assert.Equal(t, 8, rep.Size)
	assert.True(t, rep.Verified)
	assert.Equal(t, []string{"gradient/8/gradient.vtk.lz4"}, rep.Dumps)

	f, err := os.Open(filepath.Join(dir, "gradient", "8", "gradient.vtk.lz4"))
	require.NoError(t, err)
	defer f.Close()

	file, err := legacy.Parse(legacy.NewReader(f, legacy.CompressionLZ4))
	require.NoError(t, err)
	assert.Equal(t, []string{"gx", "gy", "gz", "s"}, file.Names)
}

func TestMainUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, Main(context.Background(), "gradient", nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: gradient")
}

func TestMainInvalidSize(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, Main(context.Background(), "gradient", []string{"2"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "invalid size 2")
}
