package logging_test

import (
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/olegiv/homesite/internal/logging"
	"github.com/olegiv/homesite/internal/testutil"
)

type eventRow struct {
	Level    string
	Message  string
	Metadata string
}

func readEvents(t *testing.T, db *sql.DB) []eventRow {
	t.Helper()

	rows, err := db.Query(`SELECT level, message, metadata FROM events ORDER BY id`)
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	defer rows.Close()

	var events []eventRow
	for rows.Next() {
		var e eventRow
		if err := rows.Scan(&e.Level, &e.Message, &e.Metadata); err != nil {
			t.Fatalf("scan event: %v", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	return events
}

func newLogger(t *testing.T) (*slog.Logger, *sql.DB) {
	t.Helper()

	db := testutil.TestDB(t)
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(logging.NewEventLogHandler(inner, db)), db
}

func TestWarnAndErrorArePersisted(t *testing.T) {
	logger, db := newLogger(t)

	logger.Debug("noise")
	logger.Info("startup complete")
	logger.Warn("disk space low", "free", "1GB")
	logger.Error("backup failed", "target", "s3")

	events := readEvents(t, db)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}

	if events[0].Level != "warning" || events[0].Message != "disk space low" {
		t.Errorf("warn event = %+v", events[0])
	}
	if !strings.Contains(events[0].Metadata, `"free":"1GB"`) {
		t.Errorf("warn metadata = %q", events[0].Metadata)
	}

	if events[1].Level != "error" || events[1].Message != "backup failed" {
		t.Errorf("error event = %+v", events[1])
	}
}

func TestEventWithoutAttrs(t *testing.T) {
	logger, db := newLogger(t)

	logger.Warn("bare warning")

	events := readEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Metadata != "{}" {
		t.Errorf("metadata = %q, want {}", events[0].Metadata)
	}
}

func TestMetadataEscaping(t *testing.T) {
	logger, db := newLogger(t)

	logger.Warn("odd values", "detail", "line1\nline2 \"quoted\"")

	events := readEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if !strings.Contains(events[0].Metadata, `line1\nline2 \"quoted\"`) {
		t.Errorf("metadata = %q", events[0].Metadata)
	}
}
