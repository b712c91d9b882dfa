package motd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komodo-env/komodo/internal/validate"
)

// releaseAll is the database key whose announcements apply to every
// release under the root.
const releaseAll = "all"

// Database maps release ids (or "all") to their announcements.
type Database map[string]Entry

// Entry holds the announcements for one release: message texts to write
// under motd/messages and script files to install under motd/scripts.
type Entry struct {
	Messages []string `yaml:"messages" validate:"omitempty,dive,required"`
	Scripts  []string `yaml:"scripts" validate:"omitempty,dive,required"`
}

// PostResult lists what a post wrote.
type PostResult struct {
	Messages []string // message files written
	Scripts  []string // script files installed
}

// LoadDatabase reads and validates a YAML announcement database. Decoding
// is strict: unknown fields in an entry are rejected rather than silently
// dropped, since a typo like "mesages" would otherwise suppress a notice.
func LoadDatabase(path string) (Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open motd database: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var db Database
	if err := dec.Decode(&db); err != nil {
		if errors.Is(err, io.EOF) {
			return Database{}, nil
		}
		return nil, fmt.Errorf("parse motd database %s: %w", path, err)
	}

	for id, entry := range db {
		if id != releaseAll {
			if err := validate.ReleaseNameFormat(id); err != nil {
				return nil, fmt.Errorf("motd database %s: %w", path, err)
			}
		}
		if err := validate.ValidateStruct(entry); err != nil {
			return nil, fmt.Errorf("motd database %s: entry %q: %w", path, id, err)
		}
	}
	return db, nil
}

// Post publishes the database under <root>/motd. Messages for release id
// are written as motd/messages/<NN>-<id>, numbered in order, after any
// previous files for that id are removed, so re-posting converges.
// Scripts are installed executable under motd/scripts by base name.
//
// A non-empty release filter restricts posting to that id plus "all".
func Post(db Database, root, release string) (*PostResult, error) {
	ids := make([]string, 0, len(db))
	for id := range db {
		if release != "" && id != release && id != releaseAll {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := &PostResult{}
	for _, id := range ids {
		entry := db[id]
		if err := postMessages(root, id, entry.Messages, result); err != nil {
			return result, err
		}
		if err := installScripts(root, entry.Scripts, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func postMessages(root, id string, messages []string, result *PostResult) error {
	dir := filepath.Join(root, "motd", messagesDir)
	if err := clearMessages(dir, id); err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create motd messages dir: %w", err)
	}
	for i, message := range messages {
		if !strings.HasSuffix(message, "\n") {
			message += "\n"
		}
		path := filepath.Join(dir, fmt.Sprintf("%02d-%s", i, id))
		if err := writeFileAtomic(path, []byte(message), 0o644); err != nil {
			return err
		}
		result.Messages = append(result.Messages, path)
	}
	return nil
}

// clearMessages removes the message files a previous post wrote for id.
func clearMessages(dir, id string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read motd messages dir: %w", err)
	}
	for _, entry := range entries {
		if !ownsMessage(entry.Name(), id) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("remove stale motd message: %w", err)
		}
	}
	return nil
}

// ownsMessage reports whether name is a numbered message file for id,
// i.e. matches <NN>-<id>.
func ownsMessage(name, id string) bool {
	prefix, rest, ok := strings.Cut(name, "-")
	if !ok || len(prefix) != 2 {
		return false
	}
	for _, c := range prefix {
		if c < '0' || c > '9' {
			return false
		}
	}
	return rest == id
}

func installScripts(root string, scripts []string, result *PostResult) error {
	if len(scripts) == 0 {
		return nil
	}

	dir := filepath.Join(root, "motd", scriptsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create motd scripts dir: %w", err)
	}
	for _, src := range scripts {
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("read motd script: %w", err)
		}
		path := filepath.Join(dir, filepath.Base(src))
		if err := writeFileAtomic(path, data, 0o755); err != nil {
			return err
		}
		result.Scripts = append(result.Scripts, path)
	}
	return nil
}

// writeFileAtomic writes via a temp file and rename, so the runner never
// observes a half-written announcement.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".motd-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
