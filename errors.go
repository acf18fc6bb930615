package hoard

import "errors"

// errOutOfMemory is returned by Allocate when the arena refused to grow
// further. The caller's state is left unchanged; no allocator invariant
// is broken.
var errOutOfMemory = errors.New("hoard: out of memory")

// errNotInitialized marks a failed New: either the arena could not
// be reserved, or the initial SUPERBLOCK_SIZE alignment step failed.
// Behavior of Allocate/Release on an Allocator returned alongside this
// error is undefined; callers must treat New's error return as fatal.
var errNotInitialized = errors.New("hoard: allocator failed to initialize")
