package softengine

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/crcdriver"
)

func TestChecksum(t *testing.T) {
	type testRow struct {
		alg    crcdriver.Algorithm
		expect uint32
	}

	var testData = [...]testRow{
		{alg: crcdriver.CRC32Algorithm, expect: 0xcbf43926},
		{alg: crcdriver.CRC32CAlgorithm, expect: 0xe3069283},
		{alg: crcdriver.SAM4L16Algorithm, expect: 0xffff29b1},
		{alg: crcdriver.SAM4L32Algorithm, expect: 0x0376e6e7},
		{alg: crcdriver.SAM4L32CAlgorithm, expect: 0xfabbf0ea},
	}

	input := []byte("123456789")
	for _, row := range testData {
		t.Run(row.alg.String(), func(t *testing.T) {
			actual := Checksum(row.alg, input)
			if actual != row.expect {
				t.Errorf("expect %#08x, actual %#08x", row.expect, actual)
			}
		})
	}
}

type resultChan chan uint32

func (ch resultChan) ReceiveResult(result uint32) { ch <- result }

func TestEngineCompute(t *testing.T) {
	e := New(WithVersion(0x1234), WithMaxLength(16))
	defer e.Close()

	require.Equal(t, crcdriver.FailStatus, e.Compute([]byte("x"), crcdriver.CRC32Algorithm), "no client yet")

	results := make(resultChan, 1)
	e.SetClient(results)

	require.Equal(t, uint32(0x1234), e.Version())
	require.Equal(t, crcdriver.InvalidStatus, e.Compute([]byte("x"), crcdriver.Algorithm(9)))
	require.Equal(t, crcdriver.SizeStatus, e.Compute(make([]byte, 17), crcdriver.CRC32Algorithm))
	require.False(t, e.Enabled())

	require.Equal(t, crcdriver.SuccessStatus, e.Compute([]byte("123456789"), crcdriver.SAM4L16Algorithm))
	require.True(t, e.Enabled())

	select {
	case result := <-results:
		require.Equal(t, uint32(0xffff29b1), result)
	case <-time.After(5 * time.Second):
		t.Fatal("no result")
	}

	e.Disable()
	require.False(t, e.Enabled())
	require.Equal(t, uint64(1), e.Started())
}

func TestEngineBusy(t *testing.T) {
	e := New()
	defer e.Close()
	e.SetClient(make(resultChan, 1))

	e.mu.Lock()
	e.busy = true
	e.mu.Unlock()

	require.Equal(t, crcdriver.BusyStatus, e.Compute([]byte("x"), crcdriver.CRC32Algorithm))
	require.Equal(t, uint64(0), e.Started())
}

func TestEngineClose(t *testing.T) {
	results := make(resultChan, 1)
	e := New(WithRate(1e6, 64))
	e.SetClient(results)

	require.Equal(t, crcdriver.SuccessStatus, e.Compute(make([]byte, 256), crcdriver.CRC32Algorithm))
	require.NoError(t, e.Close())

	// the accepted computation still reports its result
	require.Len(t, results, 1)
	require.Equal(t, Checksum(crcdriver.CRC32Algorithm, make([]byte, 256)), <-results)
	require.Equal(t, crcdriver.FailStatus, e.Compute([]byte("x"), crcdriver.CRC32Algorithm))
}

func TestEngineThrottledChunks(t *testing.T) {
	input := bytes.Repeat([]byte("0123456789abcdef"), 20)

	for _, alg := range []crcdriver.Algorithm{crcdriver.SAM4L16Algorithm, crcdriver.SAM4L32CAlgorithm} {
		t.Run(alg.String(), func(t *testing.T) {
			results := make(resultChan, 1)
			e := New(WithRate(1e8, 7))
			defer e.Close()
			e.SetClient(results)

			require.Equal(t, crcdriver.SuccessStatus, e.Compute(input, alg))
			select {
			case result := <-results:
				require.Equal(t, Checksum(alg, input), result)
			case <-time.After(5 * time.Second):
				t.Fatal("no result")
			}
		})
	}
}

func TestDriverWithEngine(t *testing.T) {
	const numClients = 24

	e := New(WithMaxLength(1024))
	d := crcdriver.New(e)
	e.SetClient(d)

	type answer struct {
		status crcdriver.Status
		result uint32
	}

	answers := make([]answer, numClients)
	inputs := make([][]byte, numClients)
	var wg sync.WaitGroup

	for i := 0; i < numClients; i++ {
		i := i
		id := crcdriver.ClientID(i + 1)
		alg := crcdriver.Algorithm(i % 5)

		inputs[i] = bytes.Repeat([]byte(fmt.Sprintf("client %d;", i)), i*3)
		if i == numClients-1 {
			inputs[i] = make([]byte, 2048)
		}

		wg.Add(1)
		go func() {
			cb := crcdriver.CallbackFunc(func(status crcdriver.Status, result uint, arg uint) {
				answers[i] = answer{status: status, result: uint32(result)}
				wg.Done()
			})
			require.NoError(t, d.Subscribe(id, 0, cb))
			require.NoError(t, d.Allow(id, 0, inputs[i]))
			_, err := d.Command(id, crcdriver.ComputeCommand, alg.Selector())
			require.NoError(t, err)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for results")
	}

	for i, a := range answers {
		alg := crcdriver.Algorithm(i % 5)
		if i == numClients-1 {
			require.Equal(t, crcdriver.SizeStatus, a.status, "client %d", i+1)
			continue
		}
		require.Equal(t, crcdriver.SuccessStatus, a.status, "client %d", i+1)
		require.Equal(t, Checksum(alg, inputs[i]), a.result, "client %d", i+1)
	}

	require.NoError(t, e.Close())
	require.NoError(t, d.Check())
	_, serving := d.Serving()
	require.False(t, serving)
	require.False(t, e.Enabled())
}
