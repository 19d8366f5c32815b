package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TranscriptStore = (*Store)(nil)

// Store is a SQLite-backed transcript archive.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.ragchat/data/transcripts.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ragchat", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "transcripts.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys so deleting a transcript cascades to its messages
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_transcripts.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveTranscript stores or updates a transcript record.
func (s *Store) SaveTranscript(ctx context.Context, t domain.Transcript) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcripts (id, title, started_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			started_at = excluded.started_at
	`, t.ID, t.Title, t.StartedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

// AppendMessage stores a message at the given position within a transcript.
func (s *Store) AppendMessage(ctx context.Context, transcriptID string, position int, msg domain.ChatMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (transcript_id, position, sender, text, sent_at, response_time)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(transcript_id, position) DO UPDATE SET
			sender = excluded.sender,
			text = excluded.text,
			sent_at = excluded.sent_at,
			response_time = excluded.response_time
	`, transcriptID, position, string(msg.Sender), msg.Text, msg.Timestamp.UTC(),
		nullFloat(msg.ResponseTime))

	if err != nil {
		return fmt.Errorf("saving message: %w", err)
	}
	return nil
}

// ReplaceMessages atomically swaps all messages of a transcript.
func (s *Store) ReplaceMessages(ctx context.Context, transcriptID string, msgs []domain.ChatMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE transcript_id = ?", transcriptID); err != nil {
		return fmt.Errorf("deleting messages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (transcript_id, position, sender, text, sent_at, response_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, msg := range msgs {
		if _, err := stmt.ExecContext(ctx, transcriptID, i, string(msg.Sender), msg.Text,
			msg.Timestamp.UTC(), nullFloat(msg.ResponseTime)); err != nil {
			return fmt.Errorf("saving message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetTranscript retrieves a transcript by ID.
func (s *Store) GetTranscript(ctx context.Context, id string) (*domain.Transcript, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.title, t.started_at,
			(SELECT COUNT(*) FROM messages m WHERE m.transcript_id = t.id)
		FROM transcripts t WHERE t.id = ?
	`, id)

	var t domain.Transcript
	var startedAt time.Time
	if err := row.Scan(&t.ID, &t.Title, &startedAt, &t.MessageCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning transcript: %w", err)
	}
	t.StartedAt = startedAt

	return &t, nil
}

// GetMessages retrieves a transcript's messages in position order.
func (s *Store) GetMessages(ctx context.Context, transcriptID string) ([]domain.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sender, text, sent_at, response_time
		FROM messages WHERE transcript_id = ?
		ORDER BY position
	`, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.ChatMessage //nolint:prealloc // size unknown from query
	for rows.Next() {
		var msg domain.ChatMessage
		var sender string
		var sentAt time.Time
		var responseTime sql.NullFloat64
		if err := rows.Scan(&sender, &msg.Text, &sentAt, &responseTime); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}

		msg.Sender = domain.Sender(sender)
		msg.Timestamp = sentAt
		if responseTime.Valid {
			rt := responseTime.Float64
			msg.ResponseTime = &rt
		}
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	return msgs, nil
}

// ListTranscripts returns all transcripts, newest first.
func (s *Store) ListTranscripts(ctx context.Context) ([]domain.Transcript, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.started_at,
			(SELECT COUNT(*) FROM messages m WHERE m.transcript_id = t.id)
		FROM transcripts t
		ORDER BY t.started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []domain.Transcript //nolint:prealloc // size unknown from query
	for rows.Next() {
		var t domain.Transcript
		var startedAt time.Time
		if err := rows.Scan(&t.ID, &t.Title, &startedAt, &t.MessageCount); err != nil {
			return nil, fmt.Errorf("scanning transcript: %w", err)
		}
		t.StartedAt = startedAt
		transcripts = append(transcripts, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transcripts: %w", err)
	}

	return transcripts, nil
}

// DeleteTranscript removes a transcript; messages cascade.
func (s *Store) DeleteTranscript(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM transcripts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transcript: %w", err)
	}
	return nil
}

// nullFloat converts an optional float to its SQL representation.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
