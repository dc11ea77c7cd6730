package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const migrationUpTemplate = `-- Migration: {{.Name}} ({{.Driver}})
-- Created: {{.Timestamp}}
-- Description: {{.Description}}

`

const migrationDownTemplate = `-- Migration: {{.Name}} ({{.Driver}}, rollback)
-- Created: {{.Timestamp}}
-- Description: Rollback for {{.Description}}

`

// Drivers lists the database dialects that carry their own migration directory
var Drivers = []string{"sqlite", "postgres"}

// MigrationFile describes one generated up/down pair
type MigrationFile struct {
	Version     string
	Name        string
	Driver      string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair for every driver under rootDir
// (rootDir/sqlite, rootDir/postgres). All pairs share the next free
// sequence number so the dialects stay in lockstep.
func CreateMigration(rootDir, name, description string) ([]MigrationFile, error) {
	base := sanitizeName(name)
	if base == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}

	next := 1
	for _, driver := range Drivers {
		v, err := highestVersion(filepath.Join(rootDir, driver))
		if err != nil {
			return nil, err
		}
		next = max(next, v+1)
	}
	version := fmt.Sprintf("%06d", next)
	timestamp := time.Now().Format(time.RFC3339)

	var created []MigrationFile
	for _, driver := range Drivers {
		dir := filepath.Join(rootDir, driver)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create migrations directory: %w", err)
		}

		mf := MigrationFile{
			Version:     version,
			Name:        name,
			Driver:      driver,
			Description: description,
			Timestamp:   timestamp,
			UpPath:      filepath.Join(dir, version+"_"+base+".up.sql"),
			DownPath:    filepath.Join(dir, version+"_"+base+".down.sql"),
		}
		if err := createMigrationFile(mf.UpPath, migrationUpTemplate, &mf); err != nil {
			return nil, fmt.Errorf("failed to create up migration: %w", err)
		}
		if err := createMigrationFile(mf.DownPath, migrationDownTemplate, &mf); err != nil {
			_ = os.Remove(mf.UpPath)
			return nil, fmt.Errorf("failed to create down migration: %w", err)
		}
		created = append(created, mf)
	}
	return created, nil
}

// highestVersion returns the largest numeric prefix among *.up.sql files in dir
func highestVersion(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	highest := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		prefix, _, _ := strings.Cut(e.Name(), "_")
		if v, err := strconv.Atoi(prefix); err == nil && v > highest {
			highest = v
		}
	}
	return highest, nil
}

func createMigrationFile(path, tmplContent string, data *MigrationFile) error {
	tmpl, err := template.New("migration").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// sanitizeName lowercases name and keeps [a-z0-9], folding separators into "_"
func sanitizeName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
			lastUnderscore = false
		case c == ' ' || c == '-' || c == '_':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
