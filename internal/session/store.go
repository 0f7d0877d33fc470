// Package session keeps track of logged-in visitors.
//
// A login stores exactly three values, the API token, the account type and
// the user record, under a random session id. The id travels in an HttpOnly
// cookie; the values stay on the server in a bbolt database.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"impractical.co/lantern/internal/content"
)

// ErrNotFound is returned when a session doesn't exist or has expired.
var ErrNotFound = errors.New("session not found")

const bucketSessions = "sessions"

// Keys stored in each session's bucket.
const (
	keyToken    = "token"
	keyUserType = "userType"
	keyUser     = "user"
	keyCreated  = "created"
)

// DefaultTTL is how long a session lasts when Open is given no TTL.
const DefaultTTL = 24 * time.Hour

// Session is a logged-in visitor.
type Session struct {
	ID       string
	Token    string
	UserType string
	User     content.User
	Created  time.Time
}

// Store persists sessions in a bbolt database.
type Store struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens, creating it if needed, the session database at path. Sessions
// older than ttl read as missing.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening session database %q: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSessions))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create stores a new session for res and returns it.
func (s *Store) Create(res content.LoginResult, userType string) (Session, error) {
	user, err := json.Marshal(res.User)
	if err != nil {
		return Session{}, fmt.Errorf("error encoding user: %w", err)
	}
	sess := Session{
		ID:       uuid.NewString(),
		Token:    res.Token,
		UserType: userType,
		User:     res.User,
		Created:  s.now().UTC(),
	}
	created, err := sess.Created.MarshalText()
	if err != nil {
		return Session{}, fmt.Errorf("error encoding creation time: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(bucketSessions)).CreateBucket([]byte(sess.ID))
		if err != nil {
			return err
		}
		for k, v := range map[string][]byte{
			keyToken:    []byte(sess.Token),
			keyUserType: []byte(sess.UserType),
			keyUser:     user,
			keyCreated:  created,
		} {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("error storing session: %w", err)
	}
	return sess, nil
}

// Get returns the session with the given id. Expired sessions are deleted
// and reported as ErrNotFound.
func (s *Store) Get(id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNotFound
	}
	sess := Session{ID: id}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSessions)).Bucket([]byte(id))
		if b == nil {
			return ErrNotFound
		}
		sess.Token = string(b.Get([]byte(keyToken)))
		sess.UserType = string(b.Get([]byte(keyUserType)))
		if err := json.Unmarshal(b.Get([]byte(keyUser)), &sess.User); err != nil {
			return fmt.Errorf("error decoding user: %w", err)
		}
		if err := sess.Created.UnmarshalText(b.Get([]byte(keyCreated))); err != nil {
			return fmt.Errorf("error decoding creation time: %w", err)
		}
		return nil
	})
	if err != nil {
		return Session{}, err
	}
	if s.now().Sub(sess.Created) > s.ttl {
		if err := s.Delete(id); err != nil {
			return Session{}, err
		}
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// Delete removes the session with the given id. Deleting a session that
// doesn't exist is not an error.
func (s *Store) Delete(id string) error {
	if id == "" {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(bucketSessions)).DeleteBucket([]byte(id))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketSessions)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			// nested buckets have nil values
			if v == nil {
				n++
			}
		}
		return nil
	})
	return n, err
}
