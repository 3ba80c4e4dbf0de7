package main

import (
	"errors"
	"sync"

	"github.com/chronos-tachyon/crcdriver"
)

var errTerminated = errors.New("client terminated before its result arrived")

type outcome struct {
	Job    job
	Status crcdriver.Status
	Result crcdriver.Checksum32
	Err    error
}

// runJobs registers each job as its own client, submits every request, and
// waits for all of them to be answered or abandoned.
func runJobs(d *crcdriver.Driver, jobs []job) []outcome {
	var mu sync.Mutex
	var wg sync.WaitGroup

	outcomes := make([]outcome, len(jobs))
	done := make([]sync.Once, len(jobs))

	finish := func(index int, status crcdriver.Status, result uint, err error) {
		done[index].Do(func() {
			mu.Lock()
			outcomes[index].Status = status
			outcomes[index].Result = crcdriver.Checksum32(result)
			outcomes[index].Err = err
			mu.Unlock()
			wg.Done()
		})
	}

	for index, j := range jobs {
		index := index
		id := crcdriver.ClientID(index + 1)
		outcomes[index].Job = j
		wg.Add(1)

		cb := crcdriver.CallbackFunc(func(status crcdriver.Status, result uint, _ uint) {
			finish(index, status, result, nil)
		})

		if err := d.Subscribe(id, 0, cb); err != nil {
			finish(index, crcdriver.StatusOf(err), 0, err)
			continue
		}

		buf := j.Data
		if buf == nil {
			buf = []byte{}
		}
		if err := d.Allow(id, 0, buf); err != nil {
			finish(index, crcdriver.StatusOf(err), 0, err)
			continue
		}

		if _, err := d.Command(id, crcdriver.ComputeCommand, j.Algorithm.Selector()); err != nil {
			finish(index, crcdriver.StatusOf(err), 0, err)
			continue
		}

		if j.Terminate {
			d.Terminate(id)
			finish(index, crcdriver.FailStatus, 0, errTerminated)
		}
	}

	wg.Wait()
	return outcomes
}
