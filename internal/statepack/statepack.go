// Package statepack implements the state packer: a bijection between a
// full relational DBState and a compact, interned, content-addressed
// packed representation, backed by an LRU cache of
// recently unpacked states. Packed states are interned so that pointer
// equality implies value equality, the basis of duplicate detection in the
// search space (internal/search).
package statepack

import (
	"container/list"
	"encoding/binary"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/task"
)

// PackedState is the content-addressed packed form of a DBState: per
// non-static relation, a sorted vector of 64-bit positional tuple hashes,
// plus the nullary bitset. Static relations are elided and restored from
// the task on unpack.
type PackedState struct {
	key       string
	relations map[int][]uint64
	nullary   []bool
}

func (p *PackedState) Key() string {
	return p.key
}

// Packer is the per-task precomputed packer: argument-position multipliers
// and object<->index bijections per type, plus the static-relation
// snapshot and the unpacked-state cache.
type Packer struct {
	t *task.Task

	predicateSizes map[int][]int // predicate -> per-argument-position |Objects(type)|
	objToIndex     map[int]map[int]int
	indexToObj     map[int]map[int]int

	staticPredicates map[int]bool
	staticRelations  map[int]*state.Relation

	mu      sync.Mutex
	interns map[string]*PackedState
	cache   *lruCache
}

const unpackedStateCacheCapacity = 1000

func New(t *task.Task) *Packer {
	p := &Packer{
		t:                t,
		predicateSizes:   map[int][]int{},
		objToIndex:       map[int]map[int]int{},
		indexToObj:       map[int]map[int]int{},
		staticPredicates: t.StaticPredicates(),
		staticRelations:  map[int]*state.Relation{},
		interns:          map[string]*PackedState{},
		cache:            newLRU(unpackedStateCacheCapacity),
	}

	objectsPerType := t.ObjectsPerType()
	for typeIdx, objs := range objectsPerType {
		toIdx := map[int]int{}
		toObj := map[int]int{}
		for i, obj := range objs {
			toIdx[obj] = i
			toObj[i] = obj
		}
		p.objToIndex[typeIdx] = toIdx
		p.indexToObj[typeIdx] = toObj
	}

	for _, pred := range t.Predicates {
		sizes := make([]int, len(pred.Types))
		for i, ty := range pred.Types {
			sizes[i] = len(objectsPerType[ty])
		}
		p.predicateSizes[pred.Index] = sizes
	}

	for predIdx := range p.staticPredicates {
		p.staticRelations[predIdx] = t.InitialState.Relations[predIdx].Clone()
	}

	return p
}

func (p *Packer) tupleHash(predIdx int, tuple state.GroundAtom) uint64 {
	pred := &p.t.Predicates[predIdx]
	var h uint64 = 0
	var multiplier uint64 = 1
	for i, ty := range pred.Types {
		idx := p.objToIndex[ty][tuple[i]]
		h += multiplier * uint64(idx)
		multiplier *= uint64(len(p.objToIndex[ty]))
	}
	return h
}

// Pack computes the packed form of s and interns it: two calls with
// structurally equal states return the identical *PackedState pointer.
func (p *Packer) Pack(s *state.DBState) *PackedState {
	relations := map[int][]uint64{}
	for predIdx, rel := range s.Relations {
		if p.staticPredicates[predIdx] {
			continue
		}
		if len(rel.Tuples) == 0 {
			continue
		}
		hashes := make([]uint64, len(rel.Tuples))
		for i, t := range rel.Tuples {
			hashes[i] = p.tupleHash(predIdx, t)
		}
		sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
		relations[predIdx] = hashes
	}

	nullary := make([]bool, len(s.Nullary))
	copy(nullary, s.Nullary)

	key := encodeKey(relations, nullary)

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.interns[key]; ok {
		return existing
	}
	packed := &PackedState{key: key, relations: relations, nullary: nullary}
	p.interns[key] = packed
	p.cache.put(key, s.Clone())
	return packed
}

// Unpack reconstructs the full DBState from a packed state, consulting the
// LRU cache first. The returned state must not be mutated by
// the caller without cloning it first.
func (p *Packer) Unpack(ps *PackedState) *state.DBState {
	p.mu.Lock()
	if cached, ok := p.cache.get(ps.key); ok {
		p.mu.Unlock()
		return cached
	}
	p.mu.Unlock()

	s := state.New(len(p.t.Predicates))
	copy(s.Nullary, ps.nullary)

	for predIdx, hashes := range ps.relations {
		sizes := p.predicateSizes[predIdx]
		pred := &p.t.Predicates[predIdx]
		for _, h := range hashes {
			tuple := make([]int, len(sizes))
			for i, size := range sizes {
				idx := int(h % uint64(size))
				h /= uint64(size)
				tuple[i] = p.indexToObj[pred.Types[i]][idx]
			}
			s.InsertTuple(predIdx, tuple)
		}
	}
	for predIdx, rel := range p.staticRelations {
		s.Relations[predIdx] = rel.Clone()
	}

	p.mu.Lock()
	p.cache.put(ps.key, s)
	p.mu.Unlock()
	return s
}

func encodeKey(relations map[int][]uint64, nullary []bool) string {
	preds := make([]int, 0, len(relations))
	for k := range relations {
		preds = append(preds, k)
	}
	sort.Ints(preds)

	var buf []byte
	tmp := make([]byte, 8)
	for _, predIdx := range preds {
		binary.LittleEndian.PutUint64(tmp, uint64(predIdx))
		buf = append(buf, tmp...)
		for _, h := range relations[predIdx] {
			binary.LittleEndian.PutUint64(tmp, h)
			buf = append(buf, tmp...)
		}
	}
	for _, on := range nullary {
		if on {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	sum := xxhash.Sum64(buf)
	binary.LittleEndian.PutUint64(tmp, sum)
	return string(buf) + string(tmp)
}

// lruCache is a small fixed-capacity least-recently-used cache from packed
// key to unpacked DBState.
type lruCache struct {
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

type lruEntry struct {
	key   string
	value *state.DBState
}

func newLRU(capacity int) *lruCache {
	return &lruCache{capacity: capacity, ll: list.New(), items: map[string]*list.Element{}}
}

func (c *lruCache) get(key string) (*state.DBState, bool) {
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

func (c *lruCache) put(key string, value *state.DBState) {
	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry).value = value
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&lruEntry{key: key, value: value})
	c.items[key] = el
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}
}
