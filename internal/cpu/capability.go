package cpu

import (
	"os"
	"runtime"
	"strings"
)

// EnvKernel names the environment variable that forces the kernel loop.
const EnvKernel = "AGNOSTIC_KERNEL"

// ISA is a vector instruction set family.
type ISA uint8

const (
	// Generic is any host without a recognised vector unit.
	Generic ISA = iota
	// NEON is ARM64 Advanced SIMD.
	NEON
	// SVE2 is ARM64 scalable vectors.
	SVE2
	// AVX2 is x86-64 AVX2 with FMA.
	AVX2
	// AVX512 is x86-64 AVX-512 F+BW.
	AVX512
)

func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case NEON:
		return "neon"
	case SVE2:
		return "sve2"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// Impl is the loop shape used by the magnitude kernels. Every Impl performs
// the same per-element arithmetic, so results do not depend on it.
type Impl uint8

const (
	// ImplGeneric is the plain one-element loop.
	ImplGeneric Impl = iota
	// ImplUnrolled processes four elements per iteration.
	ImplUnrolled
)

func (i Impl) String() string {
	switch i {
	case ImplGeneric:
		return "generic"
	case ImplUnrolled:
		return "unrolled"
	default:
		return "unknown"
	}
}

// ParseImpl parses an Impl name.
func ParseImpl(s string) (Impl, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return ImplGeneric, true
	case "unrolled":
		return ImplUnrolled, true
	default:
		return ImplGeneric, false
	}
}

// Set once during init.
var (
	activeISA   ISA
	activeImpl  Impl
	hasOverride bool

	hasASIMD    bool
	hasSVE2     bool
	hasAVX2     bool
	hasAVX512F  bool
	hasAVX512BW bool
)

// initCapabilities runs after the platform init has filled the feature flags.
func initCapabilities() {
	activeISA = selectBestISA()
	activeImpl = selectImpl(activeISA)

	if v := os.Getenv(EnvKernel); v != "" {
		if impl, ok := ParseImpl(v); ok {
			hasOverride = true
			activeImpl = impl
		}
	}
}

func selectBestISA() ISA {
	switch runtime.GOARCH {
	case "arm64":
		// Apple silicon emulates SVE2; NEON is faster there.
		if hasSVE2 && runtime.GOOS != "darwin" {
			return SVE2
		}
		if hasASIMD {
			return NEON
		}
	case "amd64":
		if hasAVX512F && hasAVX512BW {
			return AVX512
		}
		if hasAVX2 {
			return AVX2
		}
	}
	return Generic
}

// selectImpl picks the unrolled loop on hosts wide enough to keep four
// independent square roots in flight.
func selectImpl(isa ISA) Impl {
	if isa == Generic {
		return ImplGeneric
	}
	return ImplUnrolled
}

// ActiveISA returns the detected instruction set.
func ActiveISA() ISA { return activeISA }

// ActiveImpl returns the selected kernel loop.
func ActiveImpl() Impl { return activeImpl }

// IsOverridden reports whether AGNOSTIC_KERNEL selected the loop.
func IsOverridden() bool { return hasOverride }

// HasASIMD reports ARM64 NEON.
func HasASIMD() bool { return hasASIMD }

// HasSVE2 reports ARM64 SVE2.
func HasSVE2() bool { return hasSVE2 }

// HasAVX2 reports x86-64 AVX2 with FMA.
func HasAVX2() bool { return hasAVX2 }

// HasAVX512 reports x86-64 AVX-512 F and BW.
func HasAVX512() bool { return hasAVX512F && hasAVX512BW }
