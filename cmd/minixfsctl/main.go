// Command minixfsctl drives the minixfs library against a
// bbolt-backed disk image from the command line: mkfs, mkdir, ln, rm,
// mv, ls, cat, and symlink, in the vein of GoogleCloudPlatform-gcsfuse
// and rclone-rclone's own cobra command trees.
package main

func main() {
	Execute()
}
