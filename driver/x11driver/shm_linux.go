// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package x11driver

import (
	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// shmOpen creates and attaches a private System V segment. The segment is
// marked for removal right away, so it disappears once both this process
// and the server have detached it.
func shmOpen(size int) (shmid int, buf []byte, err error) {
	shmid, err = unix.SysvShmGet(unix.IPC_PRIVATE, size, unix.IPC_CREAT|0600)
	if err != nil {
		return 0, nil, xerrors.Errorf("x11driver: shmget: %w", err)
	}
	buf, err = unix.SysvShmAttach(shmid, 0, 0)
	if err != nil {
		unix.SysvShmCtl(shmid, unix.IPC_RMID, nil)
		return 0, nil, xerrors.Errorf("x11driver: shmat: %w", err)
	}
	// Linux allows attaching a segment marked for removal, which the server
	// does later.
	if _, err := unix.SysvShmCtl(shmid, unix.IPC_RMID, nil); err != nil {
		unix.SysvShmDetach(buf)
		return 0, nil, xerrors.Errorf("x11driver: shmctl: %w", err)
	}
	return shmid, buf, nil
}

func shmClose(buf []byte) error {
	if err := unix.SysvShmDetach(buf); err != nil {
		return xerrors.Errorf("x11driver: shmdt: %w", err)
	}
	return nil
}
