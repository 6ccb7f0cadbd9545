// Package userdocs generates and resolves per-user identity documents
// printed on receipts. Documents are random per run and can be persisted so
// repeated runs over the same input keep stable receipts.
package userdocs

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Unknown is returned for users without generated documents.
const Unknown = "N/A"

// Document holds the identity papers of one user.
type Document struct {
	PersonalID    string `json:"personal_id"`
	DriverLicense string `json:"driver_license"`
}

// Store keeps the documents of every known user.
type Store struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]Document)}
}

// Generate creates documents for every user id that has none yet.
func (s *Store) Generate(userIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range userIDs {
		if _, ok := s.docs[id]; ok {
			continue
		}
		s.docs[id] = Document{
			PersonalID:    "ID-" + uuid.NewString()[:8],
			DriverLicense: "DL-" + uuid.NewString()[:8],
		}
	}
}

// Document returns the personal id and driver licence for the user, or
// Unknown for both when the user has no generated documents.
func (s *Store) Document(userID string) (personalID, driverLicense string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[userID]
	if !ok {
		return Unknown, Unknown
	}
	return doc.PersonalID, doc.DriverLicense
}

// Save persists the documents as JSON.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.docs, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("userdocs: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("userdocs: write %s: %w", path, err)
	}
	return nil
}

// Load reads previously saved documents, replacing the store's content.
// A missing file is not an error; the store is left empty.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("userdocs: read %s: %w", path, err)
	}
	docs := make(map[string]Document)
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("userdocs: decode %s: %w", path, err)
	}
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
	return nil
}
