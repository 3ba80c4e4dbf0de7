//go:build amd64 || arm64
// +build amd64 arm64

package crc32

import (
	stdcrc32 "hash/crc32"
)

var stdCastagnoli = stdcrc32.MakeTable(stdcrc32.Castagnoli)

func archUpdate(poly uint32, sum uint32, p []byte) uint32 {
	switch poly {
	case IEEE:
		return stdcrc32.Update(sum, stdcrc32.IEEETable, p)
	case Castagnoli:
		return stdcrc32.Update(sum, stdCastagnoli, p)
	default:
		return genericUpdate(tableFor(poly), sum, p)
	}
}
