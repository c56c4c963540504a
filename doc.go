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

// Package minixfs implements the pathname-resolution and
// directory-mutation core of a classic Unix-style filesystem: the
// subsystem that turns a pathname into an inode, follows symbolic
// links, and performs the directory structure mutations backing
// mkdir, rmdir, link, unlink, rename, symlink and mknod.
//
// Subpackages:
//
//	ondisk  - the on-disk directory-entry layout and name matching
//	block   - the block cache and block allocator
//	inode   - the inode cache
//	super   - the superblock and mount table
//	task    - per-task state and the user-memory capability
//	namei   - the resolver: permission checks, find_entry, add_entry,
//	          follow_link, get_dir/dir_namei, _namei/namei/lnamei,
//	          open_namei, empty_dir
//	ops     - the mutators: mknod, mkdir, rmdir, unlink, symlink,
//	          link, rename
//	config  - configuration loading
//
// Block devices, inode storage and directory data are all backed by
// a single bbolt database per device; see block.BoltDevice.
package minixfs
