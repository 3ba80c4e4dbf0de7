//go:build arm64
// +build arm64

package crc32

import (
	"golang.org/x/sys/cpu"
)

func archAvailable() bool {
	return cpu.ARM64.HasCRC32
}
