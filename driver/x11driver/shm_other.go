// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package x11driver

import "golang.org/x/xerrors"

func shmOpen(size int) (shmid int, buf []byte, err error) {
	return 0, nil, xerrors.New("x11driver: shared memory is not supported on this platform")
}

func shmClose(buf []byte) error { return nil }
