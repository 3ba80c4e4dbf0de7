package crcdriver

// Engine is the hardware CRC unit as seen by the Driver.
//
// Compute starts a computation over buf and reports immediately whether the
// unit accepted it.  For every accepted computation the unit later calls
// EngineClient.ReceiveResult exactly once, and never from inside Compute.
// The unit may read buf until then.
//
// Disable powers the unit down until the next Compute.
type Engine interface {
	Compute(buf []byte, alg Algorithm) Status
	Version() uint32
	Disable()
}

// EngineClient receives asynchronous results from an Engine.
type EngineClient interface {
	ReceiveResult(result uint32)
}
