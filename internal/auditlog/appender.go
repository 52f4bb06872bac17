package auditlog

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"tnved-api/internal/github"
)

// header is the first line of the remote CSV; rows follow the same
// nine-field, semicolon-delimited layout.
const header = "ts_iso;ip;manufacturer;product;extra;code;duty;vat;user_agent"

// Row is one audit record per classification request. Rows are
// append-only and never mutated after creation.
type Row struct {
	Timestamp    string
	ClientIP     string
	Manufacturer string
	Product      string
	Extra        string
	Code         string
	Duty         string
	Vat          string
	UserAgent    string
}

func (r Row) fields() []string {
	return []string{
		r.Timestamp,
		r.ClientIP,
		r.Manufacturer,
		r.Product,
		r.Extra,
		r.Code,
		r.Duty,
		r.Vat,
		r.UserAgent,
	}
}

// serialize sanitizes every field and joins them with the delimiter.
// After sanitization a row always re-splits into exactly nine fields.
func (r Row) serialize() string {
	fields := r.fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = sanitizeField(f)
	}
	return strings.Join(out, ";")
}

// sanitizeField collapses line breaks to spaces and replaces the field
// delimiter, so a hostile or sloppy value cannot fabricate extra rows
// or columns.
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, ";", ",")
	return s
}

// Appender pushes audit rows to the remote versioned CSV. Delivery is
// best effort: Append never returns an error and never panics the
// request path; every failure ends up in the operator log instead.
type Appender struct {
	store  github.ContentsStore
	logger *zap.Logger
}

// NewAppender wires the appender to a contents store. A nil store
// disables the feature (remote-store identifiers not configured).
func NewAppender(store github.ContentsStore, logger *zap.Logger) *Appender {
	return &Appender{store: store, logger: logger}
}

// Append performs the optimistic-concurrency read-modify-write: fetch
// current content and sha, append one row, write back guarded by the
// sha. On a conflict it refetches once, recomputes the append against
// the fresh content, and retries exactly once. No queue, no loop.
func (a *Appender) Append(ctx context.Context, row Row) {
	if a == nil || a.store == nil {
		return
	}

	content, sha, err := a.fetch(ctx)
	if err != nil {
		a.logger.Warn("audit log fetch failed", zap.Error(err))
		return
	}

	line := row.serialize()
	message := "append log " + row.Timestamp

	err = a.store.PutFile(ctx, appendLine(content, line), sha, message)
	if err == nil {
		return
	}
	if !errors.Is(err, github.ErrConflict) {
		a.logger.Warn("audit log push failed", zap.Error(err))
		return
	}

	// Another writer moved the file between our read and write. Rebuild
	// the append on top of their revision and try once more.
	content, sha, err = a.fetch(ctx)
	if err != nil {
		a.logger.Warn("audit log refetch failed", zap.Error(err))
		return
	}
	if err := a.store.PutFile(ctx, appendLine(content, line), sha, message+" (retry)"); err != nil {
		a.logger.Warn("audit log push retry failed", zap.Error(err))
	}
}

// fetch reads the current remote state. A missing file is a fresh
// start: empty content, empty sha (the put then creates the file).
func (a *Appender) fetch(ctx context.Context) ([]byte, string, error) {
	content, sha, err := a.store.GetFile(ctx)
	if errors.Is(err, github.ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return content, sha, nil
}

func appendLine(existing []byte, line string) []byte {
	var b bytes.Buffer
	if len(existing) == 0 {
		b.WriteString(header)
		b.WriteByte('\n')
	} else {
		b.Write(existing)
		if existing[len(existing)-1] != '\n' {
			b.WriteByte('\n')
		}
	}
	b.WriteString(line)
	b.WriteByte('\n')
	return b.Bytes()
}
