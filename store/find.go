package store

import (
	"bytes"

	"unix7.org/ekvdb/device"
)

// find linearly scans the used chain for a cell whose key bytes equal
// key. Keysize is compared before reading the key payload, so a miss on
// length never touches the device for the key bytes.
func find(dev device.Device, head Offset, key []byte) (pos Offset, ch cellHeader, found bool, err error) {
	pos = head
	for pos != Null {
		ch, err = readCellHeader(dev, pos)
		if err != nil {
			return Null, cellHeader{}, false, err
		}
		if int(ch.keysize) == len(key) {
			cellKey, err := readKey(dev, pos, ch)
			if err != nil {
				return Null, cellHeader{}, false, err
			}
			if bytes.Equal(cellKey, key) {
				return pos, ch, true, nil
			}
		}
		pos = ch.next
	}
	return Null, cellHeader{}, false, nil
}
