package hoard

import "github.com/cznic/mathutil"

// numSizeClasses is the number of block size classes the small-object
// path serves.
const numSizeClasses = 9

// sizeClasses lists the nine block sizes, smallest first. Each is a
// power of two from 8 to 2048, the same shape github.com/cznic/memory
// uses for its 64-entry log2 class table, just truncated to the
// allocator's nine classes and offset by three (2^3 == 8).
var sizeClasses = [numSizeClasses]uintptr{8, 16, 32, 64, 128, 256, 512, 1024, 2048}

// largestSmall is the largest size servable by the size-class engine;
// anything bigger is a "large" allocation.
const largestSmall = uintptr(2048)

// classSizeLog is the power-of-two exponent of the smallest class.
const classSizeLog = 3

// classFor returns the size class index c such that sizeClasses[c] is
// the smallest class >= n, deriving a power-of-two slot from
// mathutil.BitLen rather than scanning, since every class here is also
// a power of two.
func classFor(n uintptr) int {
	if n == 0 {
		n = 1
	}
	log := mathutil.BitLen(int(n - 1))
	if log < classSizeLog {
		log = classSizeLog
	}
	return log - classSizeLog
}

// classCapacity returns C_max(c): the number of equal-size blocks a
// fresh superblock of class c is carved into.
func classCapacity(class int) int {
	return int((superblockSize - pagerefHeaderSize) / sizeClasses[class])
}
