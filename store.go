package ledger

import (
	"bytes"
	"errors"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// RecordStore owns the canonical transaction data. Records live in one JSONL
// partition per calendar month, "<dir>/2025-10.jsonl". Reports are derived
// caches of this data and never a source of truth.
type RecordStore struct {
	dir      string
	currency string

	mu       sync.Mutex // guards locks
	locks    map[PeriodKey]*sync.Mutex
	onAppend func(PeriodKey)
}

// NewRecordStore returns a store rooted at dir. Partitions are created on
// first append; a missing partition reads as zero records.
func NewRecordStore(dir, currency string) *RecordStore {
	return &RecordStore{
		dir:      dir,
		currency: currency,
		locks:    make(map[PeriodKey]*sync.Mutex),
	}
}

// Currency returns the store's reporting currency.
func (s *RecordStore) Currency() string { return s.currency }

// OnAppend registers a callback invoked with the monthly key of every
// successful append. The report cache uses it to invalidate derived reports.
func (s *RecordStore) OnAppend(fn func(PeriodKey)) { s.onAppend = fn }

// partitionPath returns the file holding the records of a monthly key.
func (s *RecordStore) partitionPath(k PeriodKey) string {
	return filepath.Join(s.dir, k.String()+".jsonl")
}

// partitionLock returns the mutex serializing appends to one partition.
func (s *RecordStore) partitionLock(k PeriodKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[k]
	if !ok {
		l = &sync.Mutex{}
		s.locks[k] = l
	}
	return l
}

// Append validates the record and appends it to the partition matching its
// date. Appends to one partition are serialized; the write is a single whole
// line so concurrent readers never observe a torn record.
func (s *RecordStore) Append(rec TransactionRecord) (RecordID, error) {
	if err := rec.Validate(); err != nil {
		return RecordID{}, err
	}

	key := KeyOf(rec.Date)
	lock := s.partitionLock(key)
	lock.Lock()
	defer lock.Unlock()

	path := s.partitionPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return RecordID{}, &PersistenceError{Op: "append", Path: path, Err: err}
	}

	index, err := countLines(path)
	if err != nil {
		return RecordID{}, &PersistenceError{Op: "append", Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return RecordID{}, &PersistenceError{Op: "append", Path: path, Err: err}
	}
	defer f.Close()

	if err := EncodeRecord(f, rec); err != nil {
		return RecordID{}, &PersistenceError{Op: "append", Path: path, Err: err}
	}

	if s.onAppend != nil {
		s.onAppend(key)
	}
	return RecordID{Partition: key, Index: index}, nil
}

// List returns all records whose date falls within the period, ordered by
// date ascending with insertion order as tie-break. A yearly key lists the
// union of its twelve monthly partitions in chronological order. Listing is
// a pure read with no side effects.
func (s *RecordStore) List(key PeriodKey) ([]TransactionRecord, error) {
	var records []TransactionRecord
	for _, month := range key.Months() {
		part, err := s.readPartition(month)
		if err != nil {
			return nil, err
		}
		records = append(records, part...)
	}
	// Partitions are append-ordered, not date-ordered; a record may have been
	// entered late. The sort is stable so insertion order breaks ties.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

// readPartition loads one monthly partition. A missing file is zero records.
func (s *RecordStore) readPartition(k PeriodKey) ([]TransactionRecord, error) {
	f, err := os.Open(s.partitionPath(k))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeRecords(f, s.currency)
}

// Categories returns every category used across all partitions, sorted, so
// that entry tools can offer them and avoid near-duplicate labels.
func (s *RecordStore) Categories() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		f, err := os.Open(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		records, err := DecodeRecords(f, s.currency)
		f.Close()
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			seen[rec.Category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

// ContentHash returns a hash of the raw partition content contributing to the
// period. It answers "did anything change" without re-aggregating: equal
// hashes mean the derived report is still valid.
func (s *RecordStore) ContentHash(key PeriodKey) (uint64, error) {
	h := fnv.New64a()
	for _, month := range key.Months() {
		data, err := os.ReadFile(s.partitionPath(month))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return 0, err
		}
		// Partition name separates otherwise identical contents.
		h.Write([]byte(month.String()))
		h.Write(bytes.TrimSpace(data))
		h.Write([]byte{'\n'})
	}
	return h.Sum64(), nil
}

// countLines counts newline-terminated lines in path. A missing file has
// zero lines.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bytes.Count(data, []byte{'\n'}), nil
}
