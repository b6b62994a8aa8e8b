package ports

// Transport is a byte-oriented duplex connection carrying the sensor's
// textual frames, typically a serial port.
//
// A Transport has exactly one reader for its entire lifetime; that
// single-owner rule is what keeps partial frames from interleaving, so no
// locking is required.
type Transport interface {
	// ReadLine returns the next line with leading and trailing whitespace
	// removed. Every read is individually time-bounded; a read that exceeds
	// the transport's timeout returns an error wrapping domain.ErrReadTimeout.
	ReadLine() (string, error)

	// Flush discards any buffered, unread input. Acquisition flushes before
	// each attempt so a retry cannot resynchronize mid-corrupted-frame.
	Flush() error

	// Close releases the underlying connection.
	Close() error
}
