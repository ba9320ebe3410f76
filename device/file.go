package device

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// File is a Device backed by a regular file, sized to a fixed extent on
// open. Unlike Mem, its contents actually persist across process
// restarts — hwmemory.c only ever modeled a block of process memory, so
// this is the form of "persistent" the demo CLI needs to show detach
// and reattach end to end.
type File struct {
	f        *os.File
	size     int
	byteRate time.Duration
	log      *logrus.Entry
}

// OpenFile opens (creating if absent) path as a File device of exactly
// size bytes, zero-extending a shorter or freshly created file.
func OpenFile(path string, size int) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "open device file %q", path)
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "size device file %q to %d", path, size)
	}
	return &File{
		f:        f,
		size:     size,
		byteRate: defaultByteRate,
		log:      logrus.WithField("component", "device.File"),
	}, nil
}

func (d *File) Size() int { return d.size }

func (d *File) Read(pos int, out []byte, n int) (int, error) {
	if pos < 0 {
		return 0, errors.Errorf("device: negative read offset %d", pos)
	}
	if pos > d.size {
		n = 0
	} else if pos+n > d.size {
		n = d.size - pos
	}
	got, err := d.f.ReadAt(out[:n], int64(pos))
	d.sleep(n)
	if err != nil && got < n {
		return got, errors.Wrapf(err, "read %d bytes at %d", n, pos)
	}
	return n, nil
}

func (d *File) Write(pos int, in []byte, n int) (int, error) {
	if pos < 0 || pos+n > d.size {
		return -1, errors.Errorf("device: write of %d bytes at %d exceeds size %d", n, pos, d.size)
	}
	if _, err := d.f.WriteAt(in[:n], int64(pos)); err != nil {
		return -1, errors.Wrapf(err, "write %d bytes at %d", n, pos)
	}
	d.sleep(n)
	return n, nil
}

// Close releases the underlying file handle.
func (d *File) Close() error {
	return d.f.Close()
}

func (d *File) sleep(n int) {
	if d.byteRate == 0 || n <= 0 {
		return
	}
	time.Sleep(d.byteRate * time.Duration(n))
}
