package task

// UserMemory is the cross-address-space accessor capability:
// pathname strings and user buffers live in a different protection
// domain than the resolver. Rather than an implicit global accessor
// descriptor (the classic get_fs_byte/put_fs_byte pair, swapped to a
// kernel-memory variant while follow_link reads a symlink target),
// callers pass an explicit UserMemory value into the resolver.
type UserMemory interface {
	// ReadPath copies a pathname out of this memory domain.
	ReadPath() (string, error)

	// WriteBytes copies up to len(dst) bytes of data into dst, for
	// readlink's "copy the link contents back to the caller". Returns
	// the number of bytes written.
	WriteBytes(dst []byte, data []byte) int
}

// direct is a UserMemory backed by a plain Go string already resident
// in this process's address space — the common case for a library
// where there is no real separate protection domain, but the seam is
// kept so a future embedding (e.g. a real syscall boundary) only needs
// a new UserMemory implementation, not a resolver change.
type direct struct {
	path string
}

// FromString wraps a pathname that is already a native Go string.
func FromString(path string) UserMemory {
	return direct{path: path}
}

func (d direct) ReadPath() (string, error) { return d.path, nil }

func (d direct) WriteBytes(dst []byte, data []byte) int {
	return copy(dst, data)
}

// kernelMemory is the UserMemory follow_link swaps in for the one
// call that reads a symlink's target bytes out of the block cache —
// same address space as the resolver itself, modeling the classic
// accessor-descriptor swap explicitly instead of implicitly.
type kernelMemory struct {
	target string
}

// FromKernelBuffer wraps bytes already read from the block cache
// (a symlink's first data block) as a path for the resolver to walk.
func FromKernelBuffer(target string) UserMemory {
	return kernelMemory{target: target}
}

func (k kernelMemory) ReadPath() (string, error) { return k.target, nil }

func (k kernelMemory) WriteBytes(dst []byte, data []byte) int {
	return copy(dst, data)
}
