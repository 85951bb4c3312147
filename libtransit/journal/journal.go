// Package journal records every turn a planner sees and answers into a badger db so a game can be
// replayed offline.  It never feeds planner state back across restarts.
package journal

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/transit"
)

/***

Journal db format:

	"s/" + SessionID               => sessionInfo (json)
	"t/" + SessionID + "/" + Turn   => Entry (json); Turn is a big-endian uint64 so turns iterate in order

Session IDs are version 7 UUIDs, so sessions also iterate in creation order.

***/

var (
	gSessionPrefix = []byte("s/")
	gTurnPrefix    = []byte("t/")
)

// InMemory can be passed as Opts.Dir to request a throwaway in-memory journal.
const InMemory = ":memory:"

// Opts configures a Journal.
type Opts struct {
	Dir      string // db directory; empty or InMemory means in-memory
	ReadOnly bool
}

// Entry is one recorded turn.
type Entry struct {
	Turn   int    `json:"turn"`
	Budget int    `json:"budget"`
	Input  string `json:"input"`  // verbatim turn input
	Output string `json:"output"` // verbatim output line
	Spent  int    `json:"spent"`
}

type sessionInfo struct {
	Started time.Time `json:"started"`
	Dialect string    `json:"dialect"`
}

// Journal is a db wrapper holding any number of recorded sessions.
type Journal struct {
	db *badger.DB
}

// Open opens (or creates) a journal.
func Open(opts Opts) (*Journal, error) {
	dbOpts := badger.DefaultOptions(opts.Dir)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // single writer
	dbOpts.Logger = nil

	if opts.Dir == "" || opts.Dir == InMemory {
		if opts.ReadOnly {
			return nil, errors.Wrap(transit.ErrBadJournalParam, "a read-only journal needs a Dir")
		}
		dbOpts.Dir = ""
		dbOpts.ValueDir = ""
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening journal %q", opts.Dir)
	}
	return &Journal{db: db}, nil
}

// Close flushes and closes the journal.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// NewSession starts a new recording session.
func (j *Journal) NewSession(dialect string) (*Session, error) {
	if j.db == nil {
		return nil, transit.ErrJournalClosed
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	info, err := json.Marshal(sessionInfo{
		Started: time.Now().UTC(),
		Dialect: dialect,
	})
	if err != nil {
		return nil, err
	}
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(id), info)
	})
	if err != nil {
		return nil, errors.Wrap(err, "starting journal session")
	}

	klog.V(1).Infof("journal: session %v started", id)
	return &Session{j: j, ID: id, Dialect: dialect}, nil
}

// Session returns a previously started session.
func (j *Journal) Session(id string) (*Session, error) {
	if j.db == nil {
		return nil, transit.ErrJournalClosed
	}
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.Wrapf(transit.ErrNoSession, "%q: %v", id, err)
	}

	var info sessionInfo
	err = j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(sid))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &info)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(transit.ErrNoSession, "%v", sid)
	}
	if err != nil {
		return nil, err
	}
	return &Session{j: j, ID: sid, Dialect: info.Dialect}, nil
}

// Sessions lists the IDs of every recorded session, oldest first.
func (j *Journal) Sessions() ([]string, error) {
	if j.db == nil {
		return nil, transit.ErrJournalClosed
	}
	var ids []string
	err := j.db.View(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		itOpts.PrefetchValues = false
		it := txn.NewIterator(itOpts)
		defer it.Close()

		for it.Seek(gSessionPrefix); it.ValidForPrefix(gSessionPrefix); it.Next() {
			key := it.Item().Key()
			ids = append(ids, string(key[len(gSessionPrefix):]))
		}
		return nil
	})
	return ids, err
}

// Session appends turns to one recording.
type Session struct {
	j       *Journal
	ID      uuid.UUID
	Dialect string
}

// Record stores one turn.  Recording the same turn twice overwrites it.
func (s *Session) Record(e Entry) error {
	if s.j.db == nil {
		return transit.ErrJournalClosed
	}
	val, err := json.Marshal(&e)
	if err != nil {
		return err
	}
	err = s.j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(turnKey(s.ID, e.Turn), val)
	})
	return errors.Wrapf(err, "recording turn %d", e.Turn)
}

// Entries returns every recorded turn of this session in turn order.
func (s *Session) Entries() ([]Entry, error) {
	if s.j.db == nil {
		return nil, transit.ErrJournalClosed
	}
	prefix := turnPrefix(s.ID)

	var entries []Entry
	err := s.j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				return errors.Wrapf(err, "decoding %q", it.Item().Key())
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

func sessionKey(id uuid.UUID) []byte {
	var key bytes.Buffer
	key.Write(gSessionPrefix)
	key.WriteString(id.String())
	return key.Bytes()
}

func turnPrefix(id uuid.UUID) []byte {
	var key bytes.Buffer
	key.Write(gTurnPrefix)
	key.WriteString(id.String())
	key.WriteByte('/')
	return key.Bytes()
}

func turnKey(id uuid.UUID, turn int) []byte {
	var scrap [8]byte
	binary.BigEndian.PutUint64(scrap[:], uint64(turn))
	return append(turnPrefix(id), scrap[:]...)
}
