package buffer

// CircularInt64 is a fixed-capacity circular buffer of int64 values that
// remembers the oldest and newest entries still in memory. The progress
// display uses one to keep a sliding window of completion timestamps for a
// rolling throughput estimate.
type CircularInt64 struct {
	buffer    []int64 // actual storage
	pos       int     // Current position in buffer
	BufSize   int     // BufSize is the fixed number of values maintained in memory
	Count     int     // Count is the number of values in memory. Will always be <= BufSize
	TotalSeen int64   // TotalSeen is the total number of times Add has been called
}

// NewCircularInt64 creates a new circular buffer holding up to totalSize
// values. totalSize must be at least 2 to make Oldest/Newest meaningful.
func NewCircularInt64(totalSize int) *CircularInt64 {
	if totalSize < 2 {
		totalSize = 2
	}

	return &CircularInt64{
		buffer:  make([]int64, totalSize),
		pos:     0,
		BufSize: totalSize,
		Count:   0,
	}
}

// Add appends the given value to the buffer, overwriting the oldest entry
func (c *CircularInt64) Add(v int64) {
	c.TotalSeen++

	c.buffer[c.pos] = v
	c.pos = (c.pos + 1) % c.BufSize

	c.Count++
	if c.Count > c.BufSize {
		c.Count = c.BufSize // max out
	}
}

// Full returns true once Add has been called at least BufSize times
func (c *CircularInt64) Full() bool {
	return c.Count >= c.BufSize
}

// Oldest returns the oldest value still in the buffer. Requires Count > 0.
func (c *CircularInt64) Oldest() int64 {
	if c.Count < c.BufSize {
		return c.buffer[0]
	}
	return c.buffer[c.pos] // Oldest is the one we're about to overwrite
}

// Newest returns the most recently added value. Requires Count > 0.
func (c *CircularInt64) Newest() int64 {
	idx := (c.pos - 1 + c.BufSize) % c.BufSize
	return c.buffer[idx]
}
