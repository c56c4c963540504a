package inode

import "golang.org/x/sys/unix"

// Mode carries the type bits and the 9 permission bits plus
// setuid/setgid/sticky.
type Mode uint16

// Type bits, sourced from golang.org/x/sys/unix's POSIX constants
// rather than hand-rolled values.
const (
	ModeDir    Mode = unix.S_IFDIR
	ModeChar   Mode = unix.S_IFCHR
	ModeBlock  Mode = unix.S_IFBLK
	ModeRegular Mode = unix.S_IFREG
	ModeFifo   Mode = unix.S_IFIFO
	ModeSymlink Mode = unix.S_IFLNK
	ModeSocket Mode = unix.S_IFSOCK

	ModeTypeMask Mode = unix.S_IFMT

	ModeSetuid Mode = unix.S_ISUID
	ModeSetgid Mode = unix.S_ISGID
	ModeSticky Mode = unix.S_ISVTX

	ModePerm Mode = 0777
)

// IsDir reports whether m names a directory.
func (m Mode) IsDir() bool { return m&ModeTypeMask == ModeDir }

// IsSymlink reports whether m names a symbolic link.
func (m Mode) IsSymlink() bool { return m&ModeTypeMask == ModeSymlink }

// IsRegular reports whether m names a regular file.
func (m Mode) IsRegular() bool { return m&ModeTypeMask == ModeRegular }

// IsChar reports whether m names a character-special device.
func (m Mode) IsChar() bool { return m&ModeTypeMask == ModeChar }

// IsBlock reports whether m names a block-special device.
func (m Mode) IsBlock() bool { return m&ModeTypeMask == ModeBlock }

// IsDevice reports whether m names a char or block special device,
// the case in which zone[0] holds a device id rather than a block
// number.
func (m Mode) IsDevice() bool { return m.IsChar() || m.IsBlock() }

// Perm returns just the 9 permission bits (owner/group/other rwx).
func (m Mode) Perm() Mode { return m & ModePerm }
