package store

import (
	"github.com/sirupsen/logrus"

	"unix7.org/ekvdb/internal/storeerr"
)

// Set upserts key/val. If an existing used cell has the same key, its
// payload is rewritten in place (preserving capa and chain position) when
// the new payload still fits; otherwise the cell is freed and a
// replacement is allocated. Returns the cell's offset.
func (e *Engine) Set(key, val []byte) (Offset, error) {
	pos, ch, found, err := find(e.dev, e.sb.head, key)
	if err != nil {
		e.metrics.observeOp("set", outcomeOutOfSpace)
		return Null, err
	}

	if found {
		datasize := int32(len(key) + len(val))
		if datasize <= ch.capa {
			ch.keysize = int32(len(key))
			ch.valsize = int32(len(val))
			if err := writeCell(e.dev, pos, ch, key, val); err != nil {
				return Null, err
			}
			e.metrics.observeOp("set", outcomeHit)
			e.log.WithFields(logrus.Fields{"offset": pos, "inplace": true}).Debug("set")
			return pos, nil
		}

		if err := e.free(pos); err != nil {
			return Null, err
		}
	}

	newPos, err := e.alloc(key, val)
	if err != nil {
		e.metrics.observeOp("set", outcomeOutOfSpace)
		return Null, err
	}
	e.metrics.observeOp("set", outcomeHit)
	e.log.WithFields(logrus.Fields{"offset": newPos, "inplace": false}).Debug("set")
	return newPos, nil
}

// Get returns the value bytes and offset of the cell matching key, or
// storeerr.ErrNotFound if no used cell matches.
func (e *Engine) Get(key []byte) ([]byte, Offset, error) {
	pos, ch, found, err := find(e.dev, e.sb.head, key)
	if err != nil {
		return nil, Null, err
	}
	if !found {
		e.metrics.observeOp("get", outcomeMiss)
		return nil, Null, storeerr.ErrNotFound
	}

	val, err := readVal(e.dev, pos, ch)
	if err != nil {
		return nil, Null, err
	}
	e.metrics.observeOp("get", outcomeHit)
	return val, pos, nil
}

// Del removes the cell matching key, moving it to the free chain. It
// changes nothing if the key is absent, so repeated calls are idempotent;
// a miss returns storeerr.ErrNotFound.
func (e *Engine) Del(key []byte) (Offset, error) {
	pos, _, found, err := find(e.dev, e.sb.head, key)
	if err != nil {
		return Null, err
	}
	if !found {
		e.metrics.observeOp("del", outcomeMiss)
		return Null, storeerr.ErrNotFound
	}
	if err := e.free(pos); err != nil {
		return Null, err
	}
	e.metrics.observeOp("del", outcomeHit)
	e.log.WithField("offset", pos).Debug("del")
	return pos, nil
}

// Entry is one used-chain record as reported by Dump.
type Entry struct {
	Offset Offset
	Key    []byte
	Val    []byte
}

// DumpResult is the full chain walk Dump performs: used cells (with their
// key/value payloads) followed by free cells (offset only — a free cell's
// stale payload bytes are not meaningful).
type DumpResult struct {
	Used []Entry
	Free []Offset
}

// Dump walks the used chain then the free chain, logging each cell and
// returning a structured snapshot for programmatic inspection (e.g. the
// CLI's dump subcommand).
func (e *Engine) Dump() (DumpResult, error) {
	var result DumpResult

	pos := e.sb.head
	for pos != Null {
		ch, key, val, err := readCell(e.dev, pos)
		if err != nil {
			return result, err
		}
		result.Used = append(result.Used, Entry{Offset: pos, Key: key, Val: val})
		e.log.WithFields(logrus.Fields{"offset": pos, "key": string(key), "val": string(val)}).Info("used cell")
		pos = ch.next
	}

	pos = e.sb.freehead
	for pos != Null {
		ch, err := readCellHeader(e.dev, pos)
		if err != nil {
			return result, err
		}
		result.Free = append(result.Free, pos)
		e.log.WithField("offset", pos).Info("free cell")
		pos = ch.next
	}

	return result, nil
}

// Stats reports the allocator-path counters in a form unrelated to the
// Prometheus wire format, for callers that don't scrape metrics.
type Stats struct {
	HeadInit  float64
	FreeReuse float64
	TailBump  float64
}

// Stats snapshots the engine's allocator-path counters.
func (e *Engine) Stats() Stats {
	return Stats{
		HeadInit:  e.metrics.allocCount(pathHeadInit),
		FreeReuse: e.metrics.allocCount(pathFreeList),
		TailBump:  e.metrics.allocCount(pathTailBump),
	}
}
