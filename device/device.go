// Package device provides the byte-addressable, latency-simulated backing
// store the storage engine runs on. It is a capability, not a filesystem:
// callers get a fixed-size address space and two block-style primitives.
//
// The shape mirrors the teacher's std/io Reader/Writer pair — two small
// interfaces, explicit (n, err) returns — generalized to a fixed address
// space instead of a stream.
package device

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Device is a fixed-size byte-addressable region with block read/write.
// Both operations block for a time proportional to the number of bytes
// transferred, simulating a real storage device's transfer latency.
type Device interface {
	// Size returns S, the fixed device byte count.
	Size() int

	// Read copies min(n, Size()-pos) bytes starting at pos into out and
	// returns the number of bytes copied.
	Read(pos int, out []byte, n int) (int, error)

	// Write copies n bytes from in to pos. It fails if pos+n > Size().
	Write(pos int, in []byte, n int) (int, error)
}

// defaultByteRate is the per-byte simulated transfer latency, carried over from
// the original C prototype's BYTERATE constant (8 + 2 microseconds/byte).
const defaultByteRate = 10 * time.Microsecond

// Mem is an in-memory Device backed by a zero-initialized byte slice,
// standing in for the original C prototype's hwmemory.c — a block of
// memory addressed by byte offset, with the same simulated latency. It
// is the reference implementation the engine is developed and tested
// against.
type Mem struct {
	data     []byte
	byteRate time.Duration
	log      *logrus.Entry
}

// NewMem allocates a zeroed Mem device of size bytes, simulating latency
// at the default per-byte rate.
func NewMem(size int) *Mem {
	return NewMemWithRate(size, defaultByteRate)
}

// NewMemWithRate allocates a zeroed Mem device with an explicit per-byte
// latency, used by tests to disable the simulated delay (rate 0).
func NewMemWithRate(size int, rate time.Duration) *Mem {
	return &Mem{
		data:     make([]byte, size),
		byteRate: rate,
		log:      logrus.WithField("component", "device.Mem"),
	}
}

func (m *Mem) Size() int { return len(m.data) }

func (m *Mem) Read(pos int, out []byte, n int) (int, error) {
	if pos < 0 {
		return 0, errors.Errorf("device: negative read offset %d", pos)
	}
	if pos > len(m.data) {
		n = 0
	} else if pos+n > len(m.data) {
		n = len(m.data) - pos
	}
	if n > 0 {
		copy(out, m.data[pos:pos+n])
	}
	m.sleep(n)
	m.log.WithFields(logrus.Fields{"pos": pos, "n": n}).Trace("read")
	return n, nil
}

func (m *Mem) Write(pos int, in []byte, n int) (int, error) {
	if pos < 0 || pos+n > len(m.data) {
		return -1, errors.Errorf("device: write of %d bytes at %d exceeds size %d", n, pos, len(m.data))
	}
	copy(m.data[pos:pos+n], in[:n])
	m.sleep(n)
	m.log.WithFields(logrus.Fields{"pos": pos, "n": n}).Trace("write")
	return n, nil
}

func (m *Mem) sleep(n int) {
	if m.byteRate == 0 || n <= 0 {
		return
	}
	time.Sleep(m.byteRate * time.Duration(n))
}
