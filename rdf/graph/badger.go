package graph

import (
	"bytes"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/wbrown/janus-rdfquery/rdf"
)

// BadgerOptions configures a BadgerDB-backed graph
type BadgerOptions struct {
	// Path is the database directory; ignored when InMemory is set
	Path string
	// InMemory keeps all data in memory
	InMemory bool
	// SyncWrites fsyncs every write
	SyncWrites bool
}

// BadgerGraph stores triples in BadgerDB under SPO, POS and OSP indices.
// Keys carry the full triple, so scans never fetch values.
type BadgerGraph struct {
	db *badger.DB
}

// NewBadgerGraph opens a BadgerDB-backed graph
func NewBadgerGraph(opts BadgerOptions) (*BadgerGraph, error) {
	path := opts.Path
	if opts.InMemory {
		path = ""
	}
	bopts := badger.DefaultOptions(path)
	bopts.Logger = nil // Disable BadgerDB logs
	bopts.InMemory = opts.InMemory
	bopts.SyncWrites = opts.SyncWrites
	bopts.DetectConflicts = false

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerGraph{db: db}, nil
}

// Add writes triples to all indices
func (g *BadgerGraph) Add(triples ...rdf.Triple) error {
	for _, t := range triples {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return g.db.Update(func(txn *badger.Txn) error {
		for _, t := range triples {
			for _, idx := range AllIndices {
				if err := txn.Set(EncodeKey(idx, t), nil); err != nil {
					return fmt.Errorf("failed to write to %v index: %w", idx, err)
				}
			}
		}
		return nil
	})
}

// Remove deletes triples from all indices
func (g *BadgerGraph) Remove(triples ...rdf.Triple) error {
	return g.db.Update(func(txn *badger.Txn) error {
		for _, t := range triples {
			for _, idx := range AllIndices {
				if err := txn.Delete(EncodeKey(idx, t)); err != nil && err != badger.ErrKeyNotFound {
					return fmt.Errorf("failed to delete from %v index: %w", idx, err)
				}
			}
		}
		return nil
	})
}

// Len counts the triples in the SPO index
func (g *BadgerGraph) Len() (int, error) {
	start, end := EncodePrefixRange(SPO)
	txn := g.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	count := 0
	for it.Seek(start); it.Valid(); it.Next() {
		if end != nil && bytes.Compare(it.Item().Key(), end) >= 0 {
			break
		}
		count++
	}
	return count, nil
}

// Find scans the index whose prefix covers the bound positions
func (g *BadgerGraph) Find(s, p, o rdf.Term) (Iterator, error) {
	index, bound := ChooseIndex(s, p, o)
	start, end := EncodePrefixRange(index, bound...)

	txn := g.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false // KEY ONLY
	opts.Prefix = EncodePrefix(index)

	return &badgerIterator{
		txn:   txn,
		it:    txn.NewIterator(opts),
		index: index,
		start: start,
		end:   end,
		s:     s,
		p:     p,
		o:     o,
	}, nil
}

// Close closes the database
func (g *BadgerGraph) Close() error {
	return g.db.Close()
}

// badgerIterator decodes triples from index keys within one read transaction
type badgerIterator struct {
	txn     *badger.Txn
	it      *badger.Iterator
	index   IndexType
	start   []byte
	end     []byte
	s, p, o rdf.Term
	started bool
	current rdf.Triple
	err     error
	closed  bool
}

func (i *badgerIterator) Next() bool {
	if i.closed || i.err != nil {
		return false
	}
	for {
		if !i.started {
			i.it.Seek(i.start)
			i.started = true
		} else {
			i.it.Next()
		}
		if !i.it.Valid() {
			return false
		}

		key := i.it.Item().Key()
		if i.end != nil && bytes.Compare(key, i.end) >= 0 {
			return false
		}

		t, err := DecodeKey(i.index, key)
		if err != nil {
			i.err = err
			return false
		}
		if Matches(t, i.s, i.p, i.o) {
			i.current = t
			return true
		}
	}
}

func (i *badgerIterator) Triple() rdf.Triple { return i.current }

func (i *badgerIterator) Err() error { return i.err }

func (i *badgerIterator) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true
	i.it.Close()
	i.txn.Discard()
	return nil
}
