package hoard

import "go.uber.org/zap"

const (
	// defaultArenaCapacity bounds how large the single upfront virtual
	// memory reservation is. Requests that would grow the arena past
	// this ceiling fail with errOutOfMemory rather than growing further.
	defaultArenaCapacity = uintptr(1) << 32 // 4 GiB of reserved address space

	// defaultFreePageThreshold caps how many free superblocks a per-CPU
	// heap hoards before donating the surplus to the global heap.
	defaultFreePageThreshold = 2
)

// Options configures an Allocator. Every field is also settable through
// a With* functional option for callers who only want to override one
// knob.
type Options struct {
	ArenaCapacity     uintptr
	FreePageThreshold int
	NumCPU            int
	Logger            *zap.Logger
}

// Option mutates Options during New. This functional-options shape
// replaces a config file or flag set — there is no external
// configuration surface, only Go-level construction knobs.
type Option func(*Options)

// WithArenaCapacity overrides the size of the upfront arena reservation.
func WithArenaCapacity(n uintptr) Option {
	return func(o *Options) { o.ArenaCapacity = n }
}

// WithFreePageThreshold overrides how many free superblocks a per-CPU
// heap hoards before donating the surplus to the global heap.
func WithFreePageThreshold(n int) Option {
	return func(o *Options) { o.FreePageThreshold = n }
}

// WithNumCPU overrides the per-CPU heap count P, mainly useful for
// deterministic tests that want to pin the shard count.
func WithNumCPU(n int) Option {
	return func(o *Options) { o.NumCPU = n }
}

// WithLogger attaches a zap logger for debug-level allocator tracing.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func defaultOptions() Options {
	return Options{
		ArenaCapacity:     defaultArenaCapacity,
		FreePageThreshold: defaultFreePageThreshold,
		NumCPU:            0, // resolved to cpuid.NumCPU() in New if left zero
		Logger:            defaultLogger,
	}
}
