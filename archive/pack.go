package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const packSchema = `CREATE TABLE IF NOT EXISTS assets (
	key  TEXT PRIMARY KEY,
	data BLOB NOT NULL
)`

// Pack is a single-file sound archive: one SQLite table of keyed blobs
type Pack struct {
	conn *sql.DB
	path string
}

// OpenPack opens an existing pack read-only
func OpenPack(path string) (*Pack, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	return openPack(path, "file:"+path+"?mode=ro")
}

// CreatePack opens path for writing, creating the file and its parent directory
func CreatePack(path string) (*Pack, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create pack directory %s: %w", dir, err)
	}

	p, err := openPack(path, "file:"+path)
	if err != nil {
		return nil, err
	}
	if _, err := p.conn.Exec(packSchema); err != nil {
		_ = p.conn.Close()
		return nil, fmt.Errorf("failed to create pack schema: %w", err)
	}
	return p, nil
}

func openPack(path, dsn string) (*Pack, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pack: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrPackCorrupt, path, err)
	}

	log.Debugf("Opened pack %s", path)
	return &Pack{conn: conn, path: path}, nil
}

// ReadBytes implements Archive
// Keys with a sound file extension fall back to the extensionless form
func (p *Pack) ReadBytes(key string) ([]byte, bool) {
	if data, ok := p.read(key); ok {
		return data, true
	}
	if clean := CleanKey(key); clean != key {
		return p.read(clean)
	}
	return nil, false
}

func (p *Pack) read(key string) ([]byte, bool) {
	var data []byte
	err := p.conn.QueryRow(`SELECT data FROM assets WHERE key = ?`, key).Scan(&data)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warnf("Pack %s read %q: %v", p.path, key, err)
		}
		return nil, false
	}
	return data, true
}

// Put stores data under key, replacing any previous entry
func (p *Pack) Put(key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := p.conn.Exec(`INSERT INTO assets (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data`, key, data)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Keys returns every key, sorted
func (p *Pack) Keys() ([]string, error) {
	rows, err := p.conn.Query(`SELECT key FROM assets ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("list keys: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Import copies every sound file under fsys into the pack in one transaction
func (p *Pack) Import(fsys fs.FS) (int, error) {
	tx, err := p.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	n := 0
	err = fs.WalkDir(fsys, ".", func(name string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() || !isSoundFile(name) {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		key := CleanKey(name)
		if _, err := tx.Exec(`INSERT INTO assets (key, data) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET data = excluded.data`, key, data); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		n++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import commit: %w", err)
	}
	log.Infof("Imported %d sounds into %s", n, p.path)
	return n, nil
}

// Path returns the pack file location
func (p *Pack) Path() string {
	return p.path
}

// Close releases the database handle
func (p *Pack) Close() error {
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
