package deployer

import "sync/atomic"

// paddedCounter is an atomic counter padded out to its own 64-byte cache
// line. The three run counters are hammered from every worker during a copy
// burst; without the padding they would share a line and invalidate each
// other on every increment.
type paddedCounter struct {
	n atomic.Uint64
	_ [56]byte
}

// Add increments the counter.
func (c *paddedCounter) Add(delta uint64) {
	c.n.Add(delta)
}

// Load returns the current value.
func (c *paddedCounter) Load() uint64 {
	return c.n.Load()
}

// DeployStats holds the process-wide counters for one deployment run. A
// fresh instance is created per run; it is never persisted.
type DeployStats struct {
	FilesCopied paddedCounter
	BytesCopied paddedCounter
	Errors      paddedCounter
}

// NewStats returns zeroed counters.
func NewStats() *DeployStats {
	return &DeployStats{}
}
