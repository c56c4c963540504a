package minixfs

import "errors"

// Error kinds surfaced by the namei core. Callers should compare with
// errors.Is; wrapping (via github.com/pkg/errors) adds path/name
// context without hiding the sentinel.
var (
	// ErrNoEnt means a named directory entry does not exist.
	ErrNoEnt = errors.New("minixfs: no such entry")

	// ErrExist means a named directory entry already exists.
	ErrExist = errors.New("minixfs: entry exists")

	// ErrPermission means the permission() policy denied the request.
	ErrPermission = errors.New("minixfs: permission denied")

	// ErrAccess means a path traversal step was denied (not a leaf
	// permission() failure, e.g. the exec bit missing on an
	// intermediate directory).
	ErrAccess = errors.New("minixfs: access denied")

	// ErrIsDir means an operation that forbids directories was asked
	// to operate on one.
	ErrIsDir = errors.New("minixfs: is a directory")

	// ErrNotDir means a component expected to be a directory was not.
	ErrNotDir = errors.New("minixfs: not a directory")

	// ErrNotEmpty means rmdir's empty_dir check found live entries.
	ErrNotEmpty = errors.New("minixfs: directory not empty")

	// ErrBusy means rmdir was asked to remove the caller's own
	// current-directory inode, or a directory another handle still
	// holds (EBUSY, kept distinct from ErrNotEmpty).
	ErrBusy = errors.New("minixfs: resource busy")

	// ErrNoSpace means the block or inode allocator is exhausted.
	ErrNoSpace = errors.New("minixfs: no space left on device")

	// ErrCrossDevice means link or rename was asked to span devices.
	ErrCrossDevice = errors.New("minixfs: cross-device link")

	// ErrIO means a buffer read failed mid-mutation.
	ErrIO = errors.New("minixfs: i/o error")

	// ErrRestart means rename's sanity recheck failed after the
	// prepare phase; the caller must retry the whole call.
	ErrRestart = errors.New("minixfs: restart required")

	// ErrLoop means symlink following exceeded the maximum depth.
	ErrLoop = errors.New("minixfs: too many levels of symbolic links")

	// ErrInvalid means an argument violates a structural precondition
	// (empty basename where one is required, "." or ".." passed to a
	// mutator or rename endpoint, a non-symlink passed to ReadLink, a
	// directory renamed into its own subtree).
	ErrInvalid = errors.New("minixfs: invalid argument")
)
