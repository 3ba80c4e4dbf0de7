package crcdriver

import (
	"sync"

	"github.com/chronos-tachyon/assert"
)

type upcall struct {
	callback Callback
	status   Status
	result   uint
}

func (u upcall) deliver() {
	u.callback.Schedule(u.status, u.result, 0)
}

var upcallPool = sync.Pool{
	New: func() interface{} {
		ptr := new([]upcall)
		*ptr = make([]upcall, 0, 4)
		return ptr
	},
}

func takeUpcalls() *[]upcall {
	return upcallPool.Get().(*[]upcall)
}

func giveUpcalls(ptr *[]upcall) {
	assert.NotNil(&ptr)
	assert.NotNil(ptr)
	for i := range *ptr {
		(*ptr)[i] = upcall{}
	}
	*ptr = (*ptr)[:0]
	upcallPool.Put(ptr)
}
