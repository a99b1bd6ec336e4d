package sqldb

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"slices"
	"strings"
	"sync"
)

// RawStore holds raw SQL statements keyed "<group>.<name>"
type RawStore struct {
	mu    sync.RWMutex
	stmts map[string]string
}

func NewRawStore() *RawStore {
	return &RawStore{stmts: make(map[string]string)}
}

func (s *RawStore) Set(key string, rawStmt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stmts[key] = rawStmt
}

func (s *RawStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stmt, exists := s.stmts[key]
	return stmt, exists
}

func (s *RawStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.stmts))
	for k := range s.stmts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func StmtKey(group, name string) string {
	return group + "." + name
}

type GroupFS struct {
	Group string
	FS    fs.FS // must contain a `sql` directory
}

var (
	groupsMu sync.Mutex
	groups   []GroupFS
)

// RegisterGroup makes the statements under fsys/sql available to every
// client loaded afterwards. Usually called from an init() next to a
// //go:embed sql directive.
func RegisterGroup(fsys fs.FS, group string) {
	groupsMu.Lock()
	defer groupsMu.Unlock()
	groups = append(groups, GroupFS{Group: group, FS: fsys})
}

func RegisteredGroups() []GroupFS {
	groupsMu.Lock()
	defer groupsMu.Unlock()
	return slices.Clone(groups)
}

// LoadRawStmts fills store for dbType. A file named `<stmt>.<dbType>`
// (e.g. list.pgsql) wins over the portable `<stmt>.sql`, whose `?`
// placeholders are rewritten for the dialect.
func LoadRawStmts(store *RawStore, dbType string, groupFSs []GroupFS) error {
	prefix := PlaceholderPrefixForDBType[dbType]
	stmtCnt := 0
	for _, g := range groupFSs {
		files, err := fs.ReadDir(g.FS, "sql")
		if err != nil {
			return fmt.Errorf("group %q: failed to read `sql` dir: %w", g.Group, err)
		}
		portable := map[string]string{}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			filename := f.Name()
			ext := path.Ext(filename)
			name := strings.TrimSuffix(filename, ext)
			data, err := fs.ReadFile(g.FS, path.Join("sql", filename))
			if err != nil {
				return fmt.Errorf("group %q: failed to read %s: %w", g.Group, filename, err)
			}
			switch strings.TrimPrefix(ext, ".") {
			case dbType:
				store.Set(StmtKey(g.Group, name), string(data))
				stmtCnt++
			case "sql":
				portable[name] = string(data)
			}
		}
		for name, raw := range portable {
			key := StmtKey(g.Group, name)
			if _, exists := store.Get(key); exists {
				continue
			}
			store.Set(key, ReplaceStaticPlaceholders(raw, prefix))
			stmtCnt++
		}
	}
	log.Printf("[INFO][%s] %d sql raw stmts loaded for %d groups", dbType, stmtCnt, len(groupFSs))
	return nil
}
