//go:build unix

package library

import "golang.org/x/sys/unix"

func checkReadable(dir string) error {
	return unix.Access(dir, unix.R_OK|unix.X_OK)
}
