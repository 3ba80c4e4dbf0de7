//go:build !amd64 && !arm64
// +build !amd64,!arm64

package crc32

func archAvailable() bool {
	return false
}

func archUpdate(poly uint32, sum uint32, p []byte) uint32 {
	return genericUpdate(tableFor(poly), sum, p)
}
