// Package store implements the on-device storage engine: an intrusive
// singly-linked used/free chain of variable-length key/value cells living
// inside a device.Device, rooted at a superblock the engine rewrites on
// every mutation. The engine never buffers dirty state across calls — its
// in-memory struct is always a faithful shadow of the on-device image.
package store

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"unix7.org/ekvdb/device"
	"unix7.org/ekvdb/internal/storeerr"
)

// Engine owns a device and the used/free chains embedded in it.
type Engine struct {
	dev device.Device
	sb  superblock

	log     *logrus.Entry
	metrics *metrics
}

// Option configures an Engine at Open time.
type Option func(*Engine)

// WithLogger overrides the engine's logger (default: logrus standard
// logger's entry with component=store.Engine).
func WithLogger(log *logrus.Entry) Option {
	return func(e *Engine) { e.log = log }
}

// WithRegisterer registers the engine's Prometheus counters against reg.
// If omitted, counters are kept but never exposed to a registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) { _ = e.metrics.register(reg) }
}

// Open attaches an engine to dev. If the device already carries a valid
// superblock (magic word present), its chains are adopted as-is — this
// lets one process detach from a device and another reattach to it
// later and see the same logical state. If the superblock bytes at offset
// 0 are all zero, a fresh superblock is prepared (but not yet written — nothing is
// persisted until the first Set). Any other non-matching image is a
// corrupt superblock.
func Open(dev device.Device, opts ...Option) (*Engine, error) {
	e := &Engine{
		dev:     dev,
		log:     logrus.WithField("component", "store.Engine"),
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}

	buf := make([]byte, sbSize)
	if _, err := dev.Read(0, buf, sbSize); err != nil {
		return nil, errors.Wrap(err, "read superblock")
	}

	sb, gotMagic, ok := decodeSuperblock(buf)
	switch {
	case ok:
		e.sb = sb
	case gotMagic == 0 && isZero(buf):
		e.sb = superblock{size: int32(dev.Size()), head: Null, tail: Null, freehead: Null}
	default:
		return nil, storeerr.ErrCorruptSuperblock
	}

	return e, nil
}

func isZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
