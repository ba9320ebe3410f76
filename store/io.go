package store

import (
	"github.com/pkg/errors"

	"unix7.org/ekvdb/device"
	"unix7.org/ekvdb/internal/storeerr"
)

// readCellHeader fetches the chSize-byte header at pos. A short read
// (fewer bytes than requested — Read truncates instead of erroring when
// pos+n runs past the device end) would otherwise silently decode the
// zero-filled tail of buf as real header fields, so it is treated as a
// bounds error here rather than trusted.
func readCellHeader(dev device.Device, pos Offset) (cellHeader, error) {
	buf := make([]byte, chSize)
	n, err := dev.Read(int(pos), buf, chSize)
	if err != nil {
		return cellHeader{}, errors.Wrapf(err, "read cell header at %d", pos)
	}
	if n < chSize {
		return cellHeader{}, errors.Wrapf(storeerr.ErrDeviceBounds, "short read of cell header at %d", pos)
	}
	return decodeCellHeader(buf), nil
}

// readKey reads only the key bytes of a cell whose header was already
// read. See readCellHeader on why a short read is a bounds error.
func readKey(dev device.Device, pos Offset, ch cellHeader) ([]byte, error) {
	key := make([]byte, ch.keysize)
	keyPos := int(pos) + chSize
	n, err := dev.Read(keyPos, key, int(ch.keysize))
	if err != nil {
		return nil, errors.Wrapf(err, "read key at %d", keyPos)
	}
	if n < int(ch.keysize) {
		return nil, errors.Wrapf(storeerr.ErrDeviceBounds, "short read of key at %d", keyPos)
	}
	return key, nil
}

// readVal reads only the value bytes of a cell whose header was already
// read. See readCellHeader on why a short read is a bounds error.
func readVal(dev device.Device, pos Offset, ch cellHeader) ([]byte, error) {
	val := make([]byte, ch.valsize)
	valPos := int(pos) + chSize + int(ch.keysize)
	n, err := dev.Read(valPos, val, int(ch.valsize))
	if err != nil {
		return nil, errors.Wrapf(err, "read val at %d", valPos)
	}
	if n < int(ch.valsize) {
		return nil, errors.Wrapf(storeerr.ErrDeviceBounds, "short read of val at %d", valPos)
	}
	return val, nil
}

// readCell fetches a full cell: header, then key, then value.
func readCell(dev device.Device, pos Offset) (cellHeader, []byte, []byte, error) {
	ch, err := readCellHeader(dev, pos)
	if err != nil {
		return cellHeader{}, nil, nil, err
	}
	key, err := readKey(dev, pos, ch)
	if err != nil {
		return cellHeader{}, nil, nil, err
	}
	val, err := readVal(dev, pos, ch)
	if err != nil {
		return cellHeader{}, nil, nil, err
	}
	return ch, key, val, nil
}

// writeCellHeader writes only the header at pos, leaving the payload as-is.
func writeCellHeader(dev device.Device, pos Offset, ch cellHeader) error {
	buf := ch.encode()
	n, err := dev.Write(int(pos), buf, chSize)
	if err != nil || n < 0 {
		return errors.Wrapf(storeerr.ErrDeviceBounds, "write cell header at %d", pos)
	}
	return nil
}

// writeCell writes header, then key, then value, in that order.
func writeCell(dev device.Device, pos Offset, ch cellHeader, key, val []byte) error {
	if err := writeCellHeader(dev, pos, ch); err != nil {
		return err
	}
	keyPos := int(pos) + chSize
	if n, err := dev.Write(keyPos, key, int(ch.keysize)); err != nil || n < 0 {
		return errors.Wrapf(storeerr.ErrDeviceBounds, "write key at %d", keyPos)
	}
	valPos := keyPos + int(ch.keysize)
	if n, err := dev.Write(valPos, val, int(ch.valsize)); err != nil || n < 0 {
		return errors.Wrapf(storeerr.ErrDeviceBounds, "write val at %d", valPos)
	}
	return nil
}

// writeSuperblock stamps the magic word into the image and writes the
// fixed sbSize-byte record at device offset 0.
func writeSuperblock(dev device.Device, sb superblock) error {
	buf := sb.encode()
	n, err := dev.Write(0, buf, sbSize)
	if err != nil || n < 0 {
		return errors.Wrapf(storeerr.ErrDeviceBounds, "write superblock")
	}
	return nil
}
