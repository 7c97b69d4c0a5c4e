package summary

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/jmcabandara/purityflow/ast"
)

// cacheEntry is the on-disk shape of one summary: just enough to reseed a Store's flag bits on
// the next run without re-walking every function body, the same incremental-cache role the
// teacher's inference.InferredMap.Export/Import plays across package-by-package nilability runs.
type cacheEntry struct {
	Name  string
	Flags ast.Flags
}

// Export writes every summary currently in the store to w as an s2-compressed gob stream, in the
// same encode-then-compress shape as the teacher's InferredMap.Export (gob.Encoder feeding an
// s2.Writer rather than compressing an already-serialized buffer).
func (st *Store) Export(w io.Writer) error {
	sw := s2.NewWriter(w)
	entries := make([]cacheEntry, 0, len(st.byName.Pairs))
	for _, pair := range st.byName.Pairs {
		entries = append(entries, cacheEntry{Name: pair.Key, Flags: pair.Value.Flags()})
	}
	if err := gob.NewEncoder(sw).Encode(entries); err != nil {
		return fmt.Errorf("summary: exporting cache: %w", err)
	}
	return sw.Close()
}

// Import reads an Export-produced stream from r and merges its flags into this store: every
// cached name gets its summary created (if not already present) and its cached bits OR'd in.
// Because Set only ever adds bits, importing a stale or partial cache can only make the resulting
// analysis more conservative, never unsound in the other direction.
func (st *Store) Import(r io.Reader) error {
	var entries []cacheEntry
	if err := gob.NewDecoder(s2.NewReader(r)).Decode(&entries); err != nil {
		return fmt.Errorf("summary: importing cache: %w", err)
	}
	for _, e := range entries {
		s, err := st.GetOrCreate(e.Name)
		if err != nil {
			return fmt.Errorf("summary: importing cache entry %q: %w", e.Name, err)
		}
		s.Set(e.Flags)
	}
	return nil
}
