package vmem

import (
	"encoding/binary"
	"fmt"

	"github.com/NebulousLabs/Sia/build"
	bolt "go.etcd.io/bbolt"
)

var pagesBucket = []byte("pages")

// BoltStore is a PhysicalMemory that durably persists evicted pages to an
// embedded bbolt database, keyed by page number. It embeds a RAM for the
// resident frames themselves; only Evict and Restore ever touch the
// database.
type BoltStore struct {
	*RAM
	db       *bolt.DB
	pageSize uint64
}

// NewBoltStore opens (creating if necessary) a bbolt database at path and
// returns a BoltStore sized for geom.
func NewBoltStore(geom Geometry, path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, build.ExtendErr("failed to open backing store", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(pagesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, build.ExtendErr("failed to create page bucket", err)
	}
	return &BoltStore{
		RAM:      NewRAM(geom),
		db:       db,
		pageSize: geom.PageSize(),
	}, nil
}

// Close releases the underlying bbolt database handle.
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// Evict implements PhysicalMemory by marshalling frame's words and
// persisting them under page's key. The frame's in-memory contents are
// left untouched -- the allocator unlinks and, if needed, clears or
// restores the frame afterwards.
func (b *BoltStore) Evict(frame Frame, page PageNumber) error {
	start := uint64(frame) * b.pageSize
	data := make([]byte, b.pageSize*8)
	for i := uint64(0); i < b.pageSize; i++ {
		w, err := b.RAM.ReadWord(start + i)
		if err != nil {
			return build.ExtendErr("failed to read frame for eviction", err)
		}
		binary.LittleEndian.PutUint64(data[i*8:], uint64(w))
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(pagesBucket).Put(pageKey(page), data)
	})
	if err != nil {
		return build.ExtendErr("failed to persist evicted page", err)
	}
	return nil
}

// Restore implements PhysicalMemory by looking page up in the bucket and
// unmarshalling its words into frame. A page number never evicted before
// is restored as all-zero, per the backing store's conventional cold-page
// semantics.
func (b *BoltStore) Restore(frame Frame, page PageNumber) error {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(pagesBucket).Get(pageKey(page))
		if v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return build.ExtendErr("failed to read evicted page", err)
	}
	if data == nil {
		return b.RAM.zeroFrame(frame)
	}
	if uint64(len(data)) != b.pageSize*8 {
		build.Critical(fmt.Sprintf(
			"vmem: corrupt page record for page %d: got %d bytes, want %d",
			page, len(data), b.pageSize*8))
	}
	start := uint64(frame) * b.pageSize
	for i := uint64(0); i < b.pageSize; i++ {
		w := int64(binary.LittleEndian.Uint64(data[i*8:]))
		if err := b.RAM.WriteWord(start+i, Word(w)); err != nil {
			return build.ExtendErr("failed to restore frame word", err)
		}
	}
	return nil
}

// pageKey encodes a page number as a big-endian byte key so that bbolt's
// natural key ordering matches page-number ordering.
func pageKey(page PageNumber) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(page))
	return key
}
