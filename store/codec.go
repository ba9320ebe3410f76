package store

import "encoding/binary"

// Offset is a device byte position. Zero is the null sentinel — offset 0
// is never a valid cell because the superblock occupies it.
type Offset int32

// Null is the sentinel offset meaning "no cell".
const Null Offset = 0

// magic is stamped into the superblock's first word on every write.
const magic uint32 = 0xABBAABBA

// sbSize and chSize are the fixed, packed, no-padding on-device footprints
// of the superblock and a cell header. The format is native to this
// engine and not intended to be portable across implementations.
const (
	sbSize = 4 + 4 + 4 + 4 + 4  // magic, size, head, tail, freehead
	chSize = 4 + 4 + 4 + 4      // keysize, valsize, capa, next
)

// superblock is the fixed-layout root record at device offset 0. The
// engine's in-memory copy is always a faithful shadow of the on-device
// image — every mutation rewrites both together.
type superblock struct {
	size     int32
	head     Offset
	tail     Offset
	freehead Offset
}

func (sb *superblock) encode() []byte {
	buf := make([]byte, sbSize)
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(sb.size))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(sb.head))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(sb.tail))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(sb.freehead))
	return buf
}

// decodeSuperblock parses a raw sbSize-byte image. ok is false when the
// magic word doesn't match — either a fresh all-zero device (never
// written) or a corrupt image; the caller distinguishes those cases.
func decodeSuperblock(buf []byte) (sb superblock, gotMagic uint32, ok bool) {
	gotMagic = binary.LittleEndian.Uint32(buf[0:4])
	sb.size = int32(binary.LittleEndian.Uint32(buf[4:8]))
	sb.head = Offset(binary.LittleEndian.Uint32(buf[8:12]))
	sb.tail = Offset(binary.LittleEndian.Uint32(buf[12:16]))
	sb.freehead = Offset(binary.LittleEndian.Uint32(buf[16:20]))
	return sb, gotMagic, gotMagic == magic
}

// cellHeader is the fixed-layout prefix of every cell, used or free.
type cellHeader struct {
	keysize int32
	valsize int32
	capa    int32
	next    Offset
}

func (ch *cellHeader) encode() []byte {
	buf := make([]byte, chSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(ch.keysize))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(ch.valsize))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(ch.capa))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(ch.next))
	return buf
}

func decodeCellHeader(buf []byte) cellHeader {
	return cellHeader{
		keysize: int32(binary.LittleEndian.Uint32(buf[0:4])),
		valsize: int32(binary.LittleEndian.Uint32(buf[4:8])),
		capa:    int32(binary.LittleEndian.Uint32(buf[8:12])),
		next:    Offset(binary.LittleEndian.Uint32(buf[12:16])),
	}
}

func newCellHeader(keysize, valsize int) cellHeader {
	return cellHeader{
		keysize: int32(keysize),
		valsize: int32(valsize),
		capa:    int32(keysize + valsize),
		next:    Null,
	}
}
