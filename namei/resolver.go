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

// Package namei is the resolver: permission checks, name matching,
// find_entry, add_entry, follow_link, get_dir/dir_namei,
// _namei/namei/lnamei, open_namei and empty_dir.
//
// Control flow follows classic Minix namei.c, in the Go idiom of
// samples/memfs/fs.go (explicit error returns and deferred releases in
// place of goto-based cleanup).
package namei

import (
	"github.com/jacobsa/timeutil"
	"github.com/sirupsen/logrus"

	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/super"
)

// MaxSymlinkDepth bounds a single resolution's symlink following, so a
// cycle of symlinks cannot recurse without limit.
const MaxSymlinkDepth = 8

// Resolver bundles the collaborators the namei core depends on but
// does not own: the block cache/allocator, inode cache, and the
// superblock/mount table.
type Resolver struct {
	Blocks *block.Cache
	Alloc  *block.Allocator
	Inodes *inode.Cache
	Mounts *super.Table
	Clock  timeutil.Clock
	Log    logrus.FieldLogger
}

// New builds a Resolver over the given collaborators.
func New(blocks *block.Cache, alloc *block.Allocator, inodes *inode.Cache, mounts *super.Table, clock timeutil.Clock, log logrus.FieldLogger) *Resolver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Resolver{Blocks: blocks, Alloc: alloc, Inodes: inodes, Mounts: mounts, Clock: clock, Log: log}
}
