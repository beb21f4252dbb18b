// Package roster parses uploaded attendee rosters into invitation stubs.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"eventinvite/internal/domain"
)

// Parse reads CSV roster bytes into invited-participant stubs. The file must
// have a header row naming at least "name" and "email" columns (matched
// case-insensitively). Rows missing either value are skipped; values are
// trimmed of surrounding whitespace. A structurally unreadable file returns
// an error wrapping domain.ErrRosterUnreadable.
func Parse(data []byte) ([]domain.InvitedParticipant, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	// Short rows are bad rows to skip, not a structural failure.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", domain.ErrRosterUnreadable)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRosterUnreadable, err)
	}

	nameCol, emailCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameCol = i
		case "email":
			emailCol = i
		}
	}
	if nameCol < 0 || emailCol < 0 {
		return nil, fmt.Errorf("%w: header must contain name and email columns", domain.ErrRosterUnreadable)
	}

	invited := []domain.InvitedParticipant{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRosterUnreadable, err)
		}
		if nameCol >= len(record) || emailCol >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[nameCol])
		email := strings.TrimSpace(record[emailCol])
		if name == "" || email == "" {
			continue
		}
		invited = append(invited, domain.InvitedParticipant{Name: name, Email: email})
	}
	return invited, nil
}
