// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package task models per-task resolution state: current working
// directory, root inode, uid/gid/group set, umask, controlling
// terminal, plus a user-memory accessor capability abstracting over
// where a pathname or buffer argument actually lives.
package task

import (
	"github.com/jacobsa/minixfs/inode"
)

// Task is one caller's resolution context: its working directory, its
// (possibly pseudo-) root, and its credentials.
type Task struct {
	// Root is this task's root inode. For a task under a chroot, this
	// is the pseudo-root: ".." folds to "." when it is reached.
	Root *inode.Inode

	// Cwd is this task's current working directory.
	Cwd *inode.Inode

	Uid    uint32
	Gid    uint32
	Groups []uint32 // supplementary group set
	Umask  uint16
	TTY    string
}

// IsSuperuser reports whether this task's effective uid is root.
func (t *Task) IsSuperuser() bool { return t.Uid == 0 }

// InGroup reports whether gid is this task's effective gid or in its
// supplementary group set.
func (t *Task) InGroup(gid uint32) bool {
	if t.Gid == gid {
		return true
	}
	for _, g := range t.Groups {
		if g == gid {
			return true
		}
	}
	return false
}

// IsPseudoRoot reports whether in is this task's root, the point at
// which ".." must fold to "." rather than ascend further.
func (t *Task) IsPseudoRoot(in *inode.Inode) bool {
	return t.Root != nil && in.Dev == t.Root.Dev && in.Num == t.Root.Num
}
