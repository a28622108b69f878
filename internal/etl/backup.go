package etl

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ignite/fitness-api/internal/domain"
)

// backupTimestampLayout names artifacts so repeated runs never collide.
const backupTimestampLayout = "20060102_150405"

// backup writes the cleaned sets as CSV and the run statistics as JSON, all
// named with the run timestamp, then mirrors them to the artifact store when
// one is configured. Returns the local file paths.
func (p *Pipeline) backup(ctx context.Context, runAt time.Time, contacts []domain.Contact, programs []domain.Program, stats *domain.CleaningStats) ([]string, error) {
	if err := os.MkdirAll(p.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	ts := runAt.Format(backupTimestampLayout)

	contactCSV, err := contactsCSV(contacts)
	if err != nil {
		return nil, err
	}
	programCSV, err := programsCSV(programs)
	if err != nil {
		return nil, err
	}
	statsJSON, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}

	artifacts := []struct {
		name string
		body []byte
	}{
		{fmt.Sprintf("contacts_backup_%s.csv", ts), contactCSV},
		{fmt.Sprintf("programs_backup_%s.csv", ts), programCSV},
		{fmt.Sprintf("etl_log_%s.json", ts), statsJSON},
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(p.backupDir, a.name)
		if err := os.WriteFile(path, a.body, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", a.name, err)
		}
		paths = append(paths, path)
	}

	if p.artifacts != nil {
		for _, a := range artifacts {
			key := "etl/" + a.name
			if err := p.artifacts.Put(ctx, key, a.body); err != nil {
				return nil, fmt.Errorf("mirror %s: %w", a.name, err)
			}
			log.Printf("[ETL] Mirrored artifact %s", key)
		}
	}

	return paths, nil
}

func contactsCSV(contacts []domain.Contact) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"id", "name", "email", "message", "submitted_at"})
	for _, c := range contacts {
		w.Write([]string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Email,
			c.Message,
			c.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode contacts csv: %w", err)
	}
	return buf.Bytes(), nil
}

func programsCSV(programs []domain.Program) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"id", "name", "description"})
	for _, p := range programs {
		w.Write([]string{strconv.Itoa(p.ID), p.Name, p.Description})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode programs csv: %w", err)
	}
	return buf.Bytes(), nil
}
