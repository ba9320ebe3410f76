package store

import (
	"unix7.org/ekvdb/internal/storeerr"
)

// alloc places a new (key, val) cell using the three strategies below, in
// this fixed order, returning the first that succeeds. Order and the
// one-byte tail-bump gap match the original C hwstore_put exactly; both
// determine the on-device offsets, so changing either would break
// on-device layout compatibility with the original.
func (e *Engine) alloc(key, val []byte) (Offset, error) {
	if pos, ok, err := e.allocHeadInit(key, val); err != nil || ok {
		return pos, err
	}
	if pos, ok, err := e.allocFreeReuse(key, val); err != nil || ok {
		return pos, err
	}
	if pos, ok, err := e.allocTailBump(key, val); err != nil || ok {
		return pos, err
	}
	return Null, storeerr.ErrOutOfSpace
}

// allocHeadInit places the very first cell at offset sbSize, only when
// the used chain is empty. It matches the original C hwstore_put's
// bootstrap case. Clearing freehead here is only correct because an
// empty used chain implies an empty free chain too (nothing has ever
// been freed); that precondition doesn't always hold after a chain is
// emptied out by deletion. A violation is only logged as a Warn and
// freehead is cleared anyway, discarding the existing free chain.
func (e *Engine) allocHeadInit(key, val []byte) (Offset, bool, error) {
	if e.sb.head != Null {
		return Null, false, nil
	}
	if e.sb.freehead != Null {
		e.log.WithField("freehead", e.sb.freehead).Warn("head-init with non-empty free chain; clearing anyway")
	}

	pos := Offset(sbSize)
	ch := newCellHeader(len(key), len(val))
	if err := writeCell(e.dev, pos, ch, key, val); err != nil {
		return Null, false, err
	}

	e.sb.head = pos
	e.sb.tail = pos
	e.sb.freehead = Null
	if err := writeSuperblock(e.dev, e.sb); err != nil {
		return Null, false, err
	}

	e.metrics.observeAlloc(pathHeadInit)
	e.log.WithField("offset", pos).Debug("alloc: head-init")
	return pos, true, nil
}

// allocFreeReuse walks the free chain for the first cell whose capa fits
// the new payload, unlinks it, and prepends it to the used chain — the
// used chain is thereby LIFO-ordered by re-allocation. capa is preserved
// exactly (no splitting); the cost is accepted internal fragmentation.
func (e *Engine) allocFreeReuse(key, val []byte) (Offset, bool, error) {
	datasize := int32(len(key) + len(val))
	if e.sb.freehead == Null {
		return Null, false, nil
	}

	var predPos Offset = Null
	var pred cellHeader
	pos := e.sb.freehead

	for pos != Null {
		ch, err := readCellHeader(e.dev, pos)
		if err != nil {
			return Null, false, err
		}

		if ch.capa >= datasize {
			if predPos == Null {
				e.sb.freehead = ch.next
			} else {
				pred.next = ch.next
				if err := writeCellHeader(e.dev, predPos, pred); err != nil {
					return Null, false, err
				}
			}

			ch.keysize = int32(len(key))
			ch.valsize = int32(len(val))
			ch.next = e.sb.head
			e.sb.head = pos

			if err := writeCell(e.dev, pos, ch, key, val); err != nil {
				return Null, false, err
			}
			if err := writeSuperblock(e.dev, e.sb); err != nil {
				return Null, false, err
			}

			e.metrics.observeAlloc(pathFreeList)
			e.log.WithField("offset", pos).Debug("alloc: free-list reuse")
			return pos, true, nil
		}

		predPos = pos
		pred = ch
		pos = ch.next
	}
	return Null, false, nil
}

// allocTailBump extends the device's high-water mark, placing the new
// cell one byte past the current tail cell's end. That one-byte gap is
// almost certainly an off-by-one in the original C prototype, but it is
// reproduced here deliberately to stay layout-compatible with it, not a
// bug to fix.
//
// If the tail cell itself was freed without sb.tail being updated (see
// free below), this reads the header of a cell now on the free chain
// and uses its capa to compute tailend. That is reproduced faithfully
// rather than special-cased, matching the original's behavior.
func (e *Engine) allocTailBump(key, val []byte) (Offset, bool, error) {
	datasize := int32(len(key) + len(val))

	tailCell, err := readCellHeader(e.dev, e.sb.tail)
	if err != nil {
		return Null, false, err
	}

	tailEnd := int32(e.sb.tail) + chSize + tailCell.capa
	nextEnd := tailEnd + chSize + datasize

	if nextEnd >= e.sb.size {
		return Null, false, nil
	}

	nextPos := Offset(tailEnd + 1)
	nextCell := newCellHeader(len(key), len(val))
	if err := writeCell(e.dev, nextPos, nextCell, key, val); err != nil {
		return Null, false, err
	}

	tailCell.next = nextPos
	if err := writeCellHeader(e.dev, e.sb.tail, tailCell); err != nil {
		return Null, false, err
	}

	e.sb.tail = nextPos
	if err := writeSuperblock(e.dev, e.sb); err != nil {
		return Null, false, err
	}

	e.metrics.observeAlloc(pathTailBump)
	e.log.WithField("offset", nextPos).Debug("alloc: tail bump")
	return nextPos, true, nil
}

// free moves the used cell at addr to the head of the free chain. capa is
// preserved so the allocator can reuse it later. tail is deliberately
// left pointing at a freed cell when that cell was the tail, matching
// the original C hwstore_del, which never updates it either — a known
// quirk, not a bug to paper over.
func (e *Engine) free(addr Offset) error {
	if e.sb.head == Null {
		return nil
	}

	if e.sb.head == addr {
		ch, err := readCellHeader(e.dev, addr)
		if err != nil {
			return err
		}
		e.sb.head = ch.next
		ch.next = e.sb.freehead
		e.sb.freehead = addr
		if err := writeCellHeader(e.dev, addr, ch); err != nil {
			return err
		}
		return writeSuperblock(e.dev, e.sb)
	}

	predPos := e.sb.head
	pred, err := readCellHeader(e.dev, predPos)
	if err != nil {
		return err
	}

	for pred.next != Null {
		if pred.next == addr {
			target, err := readCellHeader(e.dev, addr)
			if err != nil {
				return err
			}
			pred.next = target.next
			if err := writeCellHeader(e.dev, predPos, pred); err != nil {
				return err
			}
			target.next = e.sb.freehead
			e.sb.freehead = addr
			if err := writeCellHeader(e.dev, addr, target); err != nil {
				return err
			}
			return writeSuperblock(e.dev, e.sb)
		}
		predPos = pred.next
		pred, err = readCellHeader(e.dev, predPos)
		if err != nil {
			return err
		}
	}

	e.log.WithField("addr", addr).Trace("free: address not on used chain, no-op")
	return nil
}
