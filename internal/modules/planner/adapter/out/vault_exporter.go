package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"aria/internal/modules/planner/domain"
	plannerout "aria/internal/modules/planner/port/out"
	"aria/internal/platform/markdown"
	"aria/internal/platform/slug"
)

// VaultExporter writes the journal as a folder of markdown files. Generated
// sections sit between managed markers so hand-written text survives re-export.
type VaultExporter struct{}

func NewVaultExporter() plannerout.Exporter {
	return VaultExporter{}
}

func (VaultExporter) Export(ctx context.Context, dir string, journal domain.Journal) ([]string, error) {
	if err := os.MkdirAll(filepath.Join(dir, "notes"), 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	files := []string{}

	deadlinesPath := filepath.Join(dir, "deadlines.md")
	err := writeManaged(deadlinesPath, []markdown.Field{
		{Key: "type", Value: "deadlines"},
		{Key: "owner", Value: journal.Profile.DisplayName()},
		{Key: "generated", Value: journal.GeneratedOn},
		{Key: "active", Value: len(domain.ActiveDeadlines(journal.Deadlines))},
	}, "# Deadlines\n", domain.ManagedDeadlinesStart, domain.ManagedDeadlinesEnd, renderDeadlines(journal))
	if err != nil {
		return nil, err
	}
	files = append(files, deadlinesPath)

	progressPath := filepath.Join(dir, "progress.md")
	err = writeManaged(progressPath, []markdown.Field{
		{Key: "type", Value: "progress"},
		{Key: "generated", Value: journal.GeneratedOn},
		{Key: "subjects", Value: journal.Profile.Subjects},
	}, "# Progress\n", domain.ManagedProgressStart, domain.ManagedProgressEnd, renderProgress(journal))
	if err != nil {
		return nil, err
	}
	files = append(files, progressPath)

	for _, note := range journal.Notes {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		path := filepath.Join(dir, "notes", noteFileName(note))
		rendered, err := markdown.Render([]markdown.Field{
			{Key: "id", Value: note.ID},
			{Key: "created", Value: note.CreatedAt},
		}, note.Text+"\n")
		if err != nil {
			return files, err
		}
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return files, fmt.Errorf("write note %s: %w", note.ID, err)
		}
		files = append(files, path)
	}
	return files, nil
}

func writeManaged(path string, fields []markdown.Field, heading, start, end, generated string) error {
	body := heading
	if existing, err := os.ReadFile(path); err == nil {
		if _, existingBody, splitErr := markdown.Split(string(existing)); splitErr == nil && strings.TrimSpace(existingBody) != "" {
			body = existingBody
		}
	}
	body = markdown.ReplaceBlock(body, start, end, generated)
	rendered, err := markdown.Render(fields, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func renderDeadlines(journal domain.Journal) string {
	if len(journal.Deadlines) == 0 {
		return "_No deadlines._"
	}
	var b strings.Builder
	b.WriteString("| Title | Subject | Start | Due | Status |\n|---|---|---|---|---|\n")
	for _, d := range journal.Deadlines {
		status := string(domain.Classify(d, journal.GeneratedOn))
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", escapeCell(d.Title), escapeCell(d.Subject), d.StartDate, d.DueDate, status)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderProgress(journal domain.Journal) string {
	var b strings.Builder
	b.WriteString("## Daily log\n\n")
	if len(journal.Progress) == 0 {
		b.WriteString("_Nothing logged yet._\n")
	}
	for _, e := range journal.Progress {
		fmt.Fprintf(&b, "- **%s** %s\n", e.Date, e.Summary)
	}

	subjects := make([]string, 0, len(journal.Topics))
	for subject := range journal.Topics {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	for _, subject := range subjects {
		tracker := journal.Topics[subject]
		done := map[string]string{}
		for _, c := range tracker.Completed {
			done[c.Topic] = c.Date
		}
		fmt.Fprintf(&b, "\n## %s (%d/%d)\n\n", subject, len(tracker.Completed), len(tracker.Topics))
		for _, topic := range tracker.Topics {
			if date, ok := done[topic]; ok {
				fmt.Fprintf(&b, "- [x] %s (%s)\n", topic, date)
				continue
			}
			fmt.Fprintf(&b, "- [ ] %s\n", topic)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func noteFileName(note domain.Note) string {
	words := strings.Fields(note.Text)
	if len(words) > 6 {
		words = words[:6]
	}
	return slug.Make(strings.Join(words, " ")) + "-" + slug.Make(note.ID) + ".md"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
