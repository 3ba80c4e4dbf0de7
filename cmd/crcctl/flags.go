package main

import (
	getopt "github.com/pborman/getopt/v2"

	"github.com/chronos-tachyon/crcdriver"
)

// type AlgorithmFlag {{{

// AlgorithmFlag implements getopt.Value for crcdriver.Algorithm.
type AlgorithmFlag struct {
	Value crcdriver.Algorithm
}

// Set fulfills getopt.Value.
func (flag *AlgorithmFlag) Set(str string, opt getopt.Option) error {
	return flag.Value.Parse(str)
}

// String fulfills getopt.Value.
func (flag AlgorithmFlag) String() string {
	return flag.Value.String()
}

var _ getopt.Value = (*AlgorithmFlag)(nil)

// }}}
