package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/eventgate/server/internal/domain"
)

// requiredCSVColumns are the header names an import file must provide.
// Extra columns are ignored.
var requiredCSVColumns = []string{"name", "description", "time", "location"}

// ImportCSV parses an uploaded CSV file into events owned by the acting
// organizer and inserts them as a single batch. The first row is the
// header; rows missing any required value are skipped individually. A
// malformed file aborts the whole import with ErrCSVParse and nothing is
// committed. Returns the number of events inserted.
func (s *EventService) ImportCSV(ctx context.Context, actor domain.Identity, filename string, file io.Reader) (int, error) {
	if !actor.IsOrganizer() {
		return 0, domain.ErrForbidden
	}

	if filename == "" {
		return 0, fmt.Errorf("%w: no file selected", domain.ErrInvalidInput)
	}
	if strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return 0, domain.ErrFileFormat
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are handled per row below

	header, err := reader.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrCSVParse, err)
	}
	if err := validUTF8Record(header); err != nil {
		return 0, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var events []*domain.Event
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Abort: rows parsed so far are discarded, no partial commit.
			return 0, fmt.Errorf("%w: %v", domain.ErrCSVParse, err)
		}
		if err := validUTF8Record(row); err != nil {
			return 0, err
		}

		fields := make(map[string]string, len(requiredCSVColumns))
		complete := true
		for _, col := range requiredCSVColumns {
			idx, ok := columns[col]
			if !ok || idx >= len(row) || row[idx] == "" {
				complete = false
				break
			}
			fields[col] = row[idx]
		}
		if !complete {
			continue
		}

		events = append(events, newEvent(actor, fields["name"], fields["description"], fields["time"], fields["location"]))
	}

	if len(events) == 0 {
		return 0, nil
	}

	if err := s.events.CreateBatch(ctx, events); err != nil {
		return 0, fmt.Errorf("import events: %w", err)
	}
	return len(events), nil
}

// validUTF8Record rejects records carrying invalid UTF-8. The upload is
// decoded as UTF-8 text, so undecodable bytes abort the whole import the
// same way a structural parse error does.
func validUTF8Record(record []string) error {
	for _, field := range record {
		if !utf8.ValidString(field) {
			return fmt.Errorf("%w: invalid UTF-8 in record", domain.ErrCSVParse)
		}
	}
	return nil
}
