package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/crcdriver"
	"github.com/chronos-tachyon/crcdriver/internal/softengine"
)

func TestParseScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.bin"), []byte("123456789"), 0666))

	raw := []byte(`
clients:
  - name: alpha
    text: "123456789"
  - file: data.bin
    algorithm: crc32c
  - text: hello
    algorithm: sam4l-16
    terminate: true
`)

	jobs, err := parseScenario(raw, dir, crcdriver.SAM4L32Algorithm)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	require.Equal(t, "alpha", jobs[0].Name)
	require.Equal(t, []byte("123456789"), jobs[0].Data)
	require.Equal(t, crcdriver.SAM4L32Algorithm, jobs[0].Algorithm)

	require.Equal(t, "data.bin", jobs[1].Name)
	require.Equal(t, []byte("123456789"), jobs[1].Data)
	require.Equal(t, crcdriver.CRC32CAlgorithm, jobs[1].Algorithm)

	require.Equal(t, "client-3", jobs[2].Name)
	require.Equal(t, crcdriver.SAM4L16Algorithm, jobs[2].Algorithm)
	require.True(t, jobs[2].Terminate)
}

func TestParseScenarioErrors(t *testing.T) {
	type testRow struct {
		name string
		raw  string
	}

	var testData = [...]testRow{
		{name: "bad-yaml", raw: "clients: [\n"},
		{name: "bad-algorithm", raw: "clients:\n  - text: x\n    algorithm: crc64\n"},
		{name: "file-and-text", raw: "clients:\n  - text: x\n    file: y\n"},
		{name: "missing-file", raw: "clients:\n  - file: does-not-exist\n"},
	}

	dir := t.TempDir()
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := parseScenario([]byte(row.raw), dir, crcdriver.DefaultAlgorithm)
			require.Error(t, err)
		})
	}
}

func TestRunJobs(t *testing.T) {
	jobs := []job{
		{Name: "a", Data: []byte("123456789"), Algorithm: crcdriver.CRC32Algorithm},
		{Name: "b", Data: []byte("123456789"), Algorithm: crcdriver.SAM4L16Algorithm},
		{Name: "c", Data: nil, Algorithm: crcdriver.CRC32CAlgorithm},
		{Name: "d", Data: make([]byte, 100), Algorithm: crcdriver.CRC32Algorithm},
		{Name: "e", Data: []byte("bye"), Algorithm: crcdriver.SAM4L32Algorithm, Terminate: true},
	}

	engine := softengine.New(softengine.WithMaxLength(64))
	d := crcdriver.New(engine)
	engine.SetClient(d)

	outcomes := runJobs(d, jobs)
	require.NoError(t, engine.Close())
	require.Len(t, outcomes, len(jobs))

	require.NoError(t, outcomes[0].Err)
	require.Equal(t, crcdriver.SuccessStatus, outcomes[0].Status)
	require.Equal(t, crcdriver.Checksum32(0xcbf43926), outcomes[0].Result)

	require.Equal(t, crcdriver.Checksum32(0xffff29b1), outcomes[1].Result)
	require.Equal(t, "0x29b1", outcomes[1].Result.StringFor(outcomes[1].Job.Algorithm))

	require.Equal(t, crcdriver.SuccessStatus, outcomes[2].Status)
	require.Equal(t, crcdriver.Checksum32(0), outcomes[2].Result)

	require.NoError(t, outcomes[3].Err)
	require.Equal(t, crcdriver.SizeStatus, outcomes[3].Status)

	// the result may beat the termination
	if outcomes[4].Err != nil {
		require.ErrorIs(t, outcomes[4].Err, errTerminated)
	} else {
		require.Equal(t, crcdriver.SuccessStatus, outcomes[4].Status)
	}
}
