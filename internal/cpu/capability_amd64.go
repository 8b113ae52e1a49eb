//go:build amd64

package cpu

import xcpu "golang.org/x/sys/cpu"

func init() {
	hasAVX2 = xcpu.X86.HasAVX2 && xcpu.X86.HasFMA
	hasAVX512F = xcpu.X86.HasAVX512F
	hasAVX512BW = xcpu.X86.HasAVX512BW
	initCapabilities()
}
