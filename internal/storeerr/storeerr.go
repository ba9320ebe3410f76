// Package storeerr holds the sentinel errors the engine surfaces at its
// public API boundary. Callers compare against these with errors.Is;
// internal layers may wrap them with pkg/errors for diagnostics.
package storeerr

import "errors"

var (
	// ErrNotFound is returned by Get/Del when no used cell matches the key.
	ErrNotFound = errors.New("ekvdb: key not found")

	// ErrOutOfSpace is returned when the allocator exhausts all three
	// placement strategies (head-init, free reuse, tail bump).
	ErrOutOfSpace = errors.New("ekvdb: device out of space")

	// ErrDeviceBounds is returned when a device write falls outside the
	// addressable range, or a read of a cell header, key or value comes
	// back short at the device end. The engine does not retry; the in-memory
	// superblock may now be ahead of the on-device one.
	ErrDeviceBounds = errors.New("ekvdb: device write out of bounds")

	// ErrCorruptSuperblock is returned by Open when a non-zero, non-magic
	// superblock image is found at device offset 0.
	ErrCorruptSuperblock = errors.New("ekvdb: superblock magic mismatch")
)
