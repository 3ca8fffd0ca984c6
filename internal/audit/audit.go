package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// logDirName holds privydash state in the working tree.
const logDirName = ".privydash"

// logFileName is the append-only publish audit log.
const logFileName = "audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`  // RFC3339 with microseconds.
	RunID     string `json:"run"` // UUID of the pipeline run.
	Operation string `json:"op"`  // Operation name.

	// Optional fields depending on operation.
	URL          string `json:"url,omitempty"`           // Published URL, when recovered.
	Recipients   int    `json:"recipients,omitempty"`    // Authorized identity count.
	Strategy     string `json:"strategy,omitempty"`      // Deploy execution strategy used.
	PayloadBytes int    `json:"payload_bytes,omitempty"` // Encrypted payload size.
	DurationMS   int64  `json:"duration_ms,omitempty"`   // Wall time of the run.
	Outcome      string `json:"outcome,omitempty"`       // success / failed / url-unknown.
	Detail       string `json:"detail,omitempty"`        // Failure detail, sanitized.
}

// NewEntry returns an entry for the given operation with a fresh run id.
func NewEntry(op string) Entry {
	return Entry{
		Operation: op,
		RunID:     uuid.NewString(),
	}
}

// Log appends an entry to the audit log under dir.
// If logging fails, the entry is dropped; operations must not fail just
// because audit logging failed.
func Log(dir string, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logDir := filepath.Join(dir, logDirName)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return
	}

	logPath := filepath.Join(logDir, logFileName)

	// #nosec G306 -- the audit log carries no secrets, only run metadata.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path of the audit log under dir.
func LogPath(dir string) string {
	return filepath.Join(dir, logDirName, logFileName)
}

// ReadEntries reads all entries from the audit log under dir.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(dir string) ([]Entry, error) {
	logPath := LogPath(dir)

	f, err := os.Open(logPath)
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			// Skip corrupt lines rather than failing the whole read.
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// LastEntry returns the most recent entry, or nil when the log is empty.
func LastEntry(dir string) (*Entry, error) {
	entries, err := ReadEntries(dir)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[len(entries)-1], nil
}
