//go:build amd64
// +build amd64

package crc32

import (
	"golang.org/x/sys/cpu"
)

func archAvailable() bool {
	return cpu.X86.HasPCLMULQDQ && cpu.X86.HasSSE41 && cpu.X86.HasSSE42
}
