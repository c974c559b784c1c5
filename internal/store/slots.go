package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/el2nil/calculator"
)

// Slots is a set of named programs kept in a YAML file, such as the
// calculation on screen and the one being graphed. Changes are written only
// by Save. It is not safe to use Slots concurrently.
type Slots struct {
	path  string
	slots map[string]calculator.Program
}

// OpenSlots loads the slots file at path. A missing file is an empty set of
// slots.
func OpenSlots(path string) (*Slots, error) {
	s := &Slots{path: path, slots: make(map[string]calculator.Program)}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &s.slots); err != nil {
		return nil, fmt.Errorf("read slots %s: %w", path, err)
	}
	if s.slots == nil {
		s.slots = make(map[string]calculator.Program)
	}
	return s, nil
}

// Path returns the file the slots are saved to.
func (s *Slots) Path() string {
	return s.path
}

// Get returns a copy of the program in a slot.
func (s *Slots) Get(name string) (calculator.Program, bool) {
	p, ok := s.slots[name]
	return p.Clone(), ok
}

// Put stores a copy of p in a slot.
func (s *Slots) Put(name string, p calculator.Program) {
	if p == nil {
		p = calculator.Program{}
	}
	s.slots[name] = p.Clone()
}

// Delete empties a slot. It returns false if the slot was already empty.
func (s *Slots) Delete(name string) bool {
	_, ok := s.slots[name]
	delete(s.slots, name)
	return ok
}

// Names returns the sorted names of the filled slots.
func (s *Slots) Names() []string {
	r := make([]string, 0, len(s.slots))
	for k := range s.slots {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Save writes the slots to their file, creating its directory if needed.
func (s *Slots) Save() error {
	b, err := yaml.Marshal(s.slots)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
