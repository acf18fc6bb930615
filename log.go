package hoard

import "go.uber.org/zap"

// defaultLogger backs the allocator's debug tracing when no logger is
// given. It is a no-op logger so callers pay nothing unless they opt in
// with WithLogger,
// mirroring how github.com/cznic/memory's trace switch is off by
// default but replacing its bare fmt.Fprintf(os.Stderr, ...) calls with
// structured, leveled logging.
var defaultLogger = zap.NewNop()
