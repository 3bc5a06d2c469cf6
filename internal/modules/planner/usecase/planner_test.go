package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	outadapter "aria/internal/modules/planner/adapter/out"
	"aria/internal/modules/planner/dto"
	plannerin "aria/internal/modules/planner/port/in"
	"aria/internal/modules/planner/service"
	"aria/internal/modules/planner/usecase"
	"aria/internal/platform/clock"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/id"
	"aria/internal/platform/store"
)

func newPlanner(t *testing.T, today string) (plannerin.Usecase, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	repo := outadapter.NewKVRepository(st, zap.NewNop())
	svc := service.NewPlannerService(clock.FixedDate(today), id.NewSequence("id"), repo)
	return usecase.NewInteractor(svc, outadapter.NewVaultExporter()), st
}

func TestDeadlineLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t, "2024-03-10")

	added, err := uc.AddDeadline(ctx, dto.DeadlineDraft{Subject: "OS", DueDate: "2024-03-11"})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", added.Title)
	assert.Equal(t, "assignment", added.Type)
	assert.Equal(t, "active", added.Status)
	assert.Equal(t, "2024-03-10", added.CreatedAt)
	assert.Equal(t, "urgent", added.Urgency)
	assert.Equal(t, "red", added.Color)

	second, err := uc.AddDeadline(ctx, dto.DeadlineDraft{Title: "Essay", DueDate: "2024-04-01"})
	require.NoError(t, err)

	title := "OS Lab"
	updated, err := uc.UpdateDeadline(ctx, dto.UpdateDeadlineInput{ID: added.ID, Updates: dto.DeadlineUpdates{Title: &title}})
	require.NoError(t, err)
	assert.Equal(t, "OS Lab", updated.Title)
	assert.Equal(t, "2024-03-11", updated.DueDate)

	_, err = uc.UpdateDeadline(ctx, dto.UpdateDeadlineInput{ID: "missing"})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	done, err := uc.CompleteDeadline(ctx, dto.CompleteDeadlineInput{Title: "os lab"})
	require.NoError(t, err)
	assert.Equal(t, "done", done.Status)
	assert.Equal(t, "2024-03-10", done.CompletedAt)

	active, err := uc.ListDeadlines(ctx, dto.ListDeadlinesInput{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	all, err := uc.ListDeadlines(ctx, dto.ListDeadlinesInput{IncludeDone: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	removed, err := uc.DeleteDeadline(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = uc.DeleteDeadline(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAddDeadlineRejectsMalformedDates(t *testing.T) {
	t.Parallel()
	uc, _ := newPlanner(t, "2024-03-10")
	_, err := uc.AddDeadline(context.Background(), dto.DeadlineDraft{Title: "x", DueDate: "next friday"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestNotesAndProgressAreNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t, "2024-03-10")

	_, err := uc.AddNote(ctx, "buy milk")
	require.NoError(t, err)
	second, err := uc.AddNote(ctx, "Call the TA about grading")
	require.NoError(t, err)

	notes, err := uc.ListNotes(ctx, dto.ListNotesInput{})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)

	found, err := uc.ListNotes(ctx, dto.ListNotesInput{Query: "ta about"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	ok, err := uc.DeleteNote(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = uc.LogProgress(ctx, dto.LogProgressInput{Summary: "did 3 problems"})
	require.NoError(t, err)
	_, err = uc.LogProgress(ctx, dto.LogProgressInput{Summary: "read ch. 4", Date: "2024-03-09"})
	require.NoError(t, err)
	progress, err := uc.ListProgress(ctx, 0)
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, "2024-03-09", progress[0].Date)
	assert.Equal(t, "2024-03-10", progress[1].Date)
}

func TestTopicCompletionTwiceKeepsCardinality(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t, "2024-03-10")

	_, err := uc.AddTopics(ctx, dto.AddTopicsInput{Subject: "DSA", Topics: []string{"graphs"}})
	require.NoError(t, err)
	first, err := uc.CompleteTopic(ctx, dto.CompleteTopicInput{Subject: "DSA", Topic: "graphs"})
	require.NoError(t, err)
	again, err := uc.CompleteTopic(ctx, dto.CompleteTopicInput{Subject: "DSA", Topic: "graphs"})
	require.NoError(t, err)
	assert.True(t, first.NewlyCreated)
	assert.False(t, again.NewlyCreated)

	topics, err := uc.Topics(ctx)
	require.NoError(t, err)
	assert.Len(t, topics["DSA"].Completed, 1)
}

func TestProfileFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t, "2024-03-10")

	_, err := uc.Onboard(ctx, dto.OnboardInput{Name: "  "})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	p, err := uc.Onboard(ctx, dto.OnboardInput{Name: "Riya", Subjects: []string{"DSA", "DSA", "OS"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"DSA", "OS"}, p.Subjects)
	assert.True(t, p.Onboarded)

	added, err := uc.AddSubject(ctx, "DBMS")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = uc.AddSubject(ctx, "DBMS")
	require.NoError(t, err)
	assert.False(t, added)
	removed, err := uc.RemoveSubject(ctx, "os")
	require.NoError(t, err)
	assert.True(t, removed)

	p, err = uc.SaveSettings(ctx, dto.SettingsInput{LeetcodeUsername: "riya_codes", Email: dto.EmailConfig{PubKey: "k", ServiceID: "s", TemplateID: "t", ToEmail: "r@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, "Riya", p.Name, "blank name keeps the old one")
	assert.Equal(t, []string{"DSA", "DBMS"}, p.Subjects)
	assert.True(t, p.EmailReady)
	assert.Equal(t, "Riya", p.UserID)
}

func TestCorruptDocumentFallsBackToEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, st := newPlanner(t, "2024-03-10")
	st.PutRaw(store.KeyDeadlines, []byte("{not json"))

	list, err := uc.ListDeadlines(ctx, dto.ListDeadlinesInput{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.AddDeadline(ctx, dto.DeadlineDraft{Title: "fresh"})
	require.NoError(t, err)
	list, err = uc.ListDeadlines(ctx, dto.ListDeadlinesInput{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExportWritesVaultAndKeepsHandWrittenText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t, "2024-03-10")
	dir := t.TempDir()

	_, err := uc.AddDeadline(ctx, dto.DeadlineDraft{Title: "OS | Lab", DueDate: "2024-03-20"})
	require.NoError(t, err)
	_, err = uc.AddNote(ctx, "Remember the quiz on Friday")
	require.NoError(t, err)
	_, err = uc.AddTopics(ctx, dto.AddTopicsInput{Subject: "DSA", Topics: []string{"graphs", "heaps"}})
	require.NoError(t, err)
	_, err = uc.CompleteTopic(ctx, dto.CompleteTopicInput{Subject: "DSA", Topic: "graphs"})
	require.NoError(t, err)

	out, err := uc.Export(ctx, dir)
	require.NoError(t, err)
	assert.Len(t, out.Files, 3)

	deadlinesPath := filepath.Join(dir, "deadlines.md")
	raw, err := os.ReadFile(deadlinesPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `OS \| Lab`)

	edited := strings.Replace(string(raw), "# Deadlines\n", "# Deadlines\n\nMy own remarks.\n", 1)
	require.NoError(t, os.WriteFile(deadlinesPath, []byte(edited), 0o644))
	_, err = uc.Export(ctx, dir)
	require.NoError(t, err)
	raw, err = os.ReadFile(deadlinesPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "My own remarks.")
	assert.Equal(t, 1, strings.Count(string(raw), "<!-- aria:deadlines:start -->"))

	progress, err := os.ReadFile(filepath.Join(dir, "progress.md"))
	require.NoError(t, err)
	assert.Contains(t, string(progress), "- [x] graphs (2024-03-10)")
	assert.Contains(t, string(progress), "- [ ] heaps")

	notes, err := os.ReadDir(filepath.Join(dir, "notes"))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.True(t, strings.HasPrefix(notes[0].Name(), "remember-the-quiz-on-friday-"))
}
