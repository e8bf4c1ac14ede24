package neural

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v2"
	"go.uber.org/zap"
)

type keyType byte

const (
	translationKey keyType = iota + 1
)

type cachedTranslation struct {
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// Storage keeps successful translations in badger. Keys are namespaced by
// language pair so that changing configured languages never returns stale results.
type Storage struct {
	DB        *badger.DB
	Namespace string
	// TTL of stored translations, zero means forever
	TTL time.Duration
}

// OpenStorage opens badger database described by config.
func OpenStorage(config *CacheConfig, namespace string, logger *zap.Logger) (*Storage, error) {
	options := badger.DefaultOptions(config.Path)
	if config.InMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	}
	if logger == nil {
		options = options.WithLogger(nil)
	} else {
		options = options.WithLogger(&badgerLogger{logger.Sugar().Named("badger")})
	}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("can not open badger: %w", err)
	}
	return &Storage{
		DB:        db,
		Namespace: namespace,
		TTL:       config.TTL,
	}, nil
}

// Get returns stored translation or badger.ErrKeyNotFound.
func (s *Storage) Get(text string) (string, error) {
	var cached cachedTranslation
	err := s.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(text))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})
	if err != nil {
		return "", err
	}
	return cached.Text, nil
}

func (s *Storage) Put(text, translation string) error {
	value, err := json.Marshal(&cachedTranslation{
		Text:    translation,
		Created: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("can not marshal translation: %w", err)
	}
	return s.DB.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(s.key(text), value)
		if s.TTL > 0 {
			entry = entry.WithTTL(s.TTL)
		}
		return txn.SetEntry(entry)
	})
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) key(text string) []byte {
	return marshalKey(s.Namespace+"\x00"+text, translationKey)
}

func marshalKey(k string, t keyType) []byte {
	result := make([]byte, 0, len(k)+1)
	result = append(result, byte(t))
	return append(result, k...)
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l *badgerLogger) Warningf(template string, args ...interface{}) {
	l.Warnf(template, args...)
}
