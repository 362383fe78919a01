package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"vellum/contexts/content-management/workflow-service/adapters/memory"
	"vellum/contexts/content-management/workflow-service/domain/entities"
	domainerrors "vellum/contexts/content-management/workflow-service/domain/errors"
)

type stubGate struct{}

func (stubGate) CanEdit(userID, role, authorID string) bool {
	if userID != "" && userID == authorID {
		return true
	}
	switch role {
	case "Editor", "Approver", "Publisher", "Admin":
		return true
	default:
		return false
	}
}

func draftContent(id string) entities.ContentRef {
	return entities.ContentRef{
		ContentID: id,
		Title:     "Quarterly report",
		Status:    entities.StatusDraft,
		AuthorID:  "author-1",
		UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func submitUseCase(store *memory.Store) SubmitForReviewUseCase {
	return SubmitForReviewUseCase{Repo: store, Gate: stubGate{}, Clock: store, IDGen: store}
}

func TestSubmitCreatesActiveInstanceAndPendingStep(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	instance, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		Comments:  "ready",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if instance.Status != entities.WorkflowActive || instance.CurrentStep != entities.StepReview {
		t.Fatalf("expected Active review instance, got %+v", instance)
	}

	content, _, _ := store.GetContent(context.Background(), "c-1")
	if content.Status != entities.StatusInReview {
		t.Fatalf("expected InReview, got %s", content.Status)
	}

	steps, err := store.ListSteps(context.Background(), instance.InstanceID)
	if err != nil || len(steps) != 1 {
		t.Fatalf("expected one step, got %d err=%v", len(steps), err)
	}
	if steps[0].Status != entities.StepPending || steps[0].Comments != "ready" {
		t.Fatalf("expected pending step with comment, got %+v", steps[0])
	}

	audits := store.AuditEntries()
	if len(audits) != 1 || audits[0].Action != "SUBMIT" {
		t.Fatalf("expected one SUBMIT audit, got %+v", audits)
	}
}

func TestSubmitRejectsNonDraftContent(t *testing.T) {
	published := draftContent("c-1")
	published.Status = entities.StatusPublished
	store := memory.NewStore([]entities.ContentRef{published}, nil)

	_, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if len(store.AuditEntries()) != 0 {
		t.Fatalf("rejected submit must not audit")
	}
	if _, exists, _ := store.FindActiveInstance(context.Background(), "c-1"); exists {
		t.Fatalf("rejected submit must not create an instance")
	}
}

func TestSubmitRejectsDuplicateActiveWorkflow(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	uc := submitUseCase(store)
	if _, err := uc.Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// Force the content back to Draft while the instance stays Active so
	// only the duplicate-instance guard can reject the second submit.
	content, _, _ := store.GetContent(context.Background(), "c-1")
	content.Status = entities.StatusDraft
	store.SeedContent(content)

	_, err := uc.Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if !errors.Is(err, domainerrors.ErrActiveWorkflowExists) {
		t.Fatalf("expected active workflow conflict, got %v", err)
	}
}

func TestSubmitRequiresEditPermission(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	_, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "stranger",
		ActorRole: "Author",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestApproveCompletesWorkflow(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	instance, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approve := ApproveUseCase{Repo: store, Clock: store, IDGen: store}
	if err := approve.Execute(context.Background(), ApproveCommand{
		InstanceID: instance.InstanceID,
		Comments:   "looks good",
		ActorID:    "approver-1",
		ActorRole:  "Approver",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	content, _, _ := store.GetContent(context.Background(), "c-1")
	if content.Status != entities.StatusApproved {
		t.Fatalf("expected Approved, got %s", content.Status)
	}
	updated, _, _ := store.GetInstance(context.Background(), instance.InstanceID)
	if updated.Status != entities.WorkflowCompleted || updated.CurrentStep != entities.StepApproved {
		t.Fatalf("expected Completed/approved instance, got %+v", updated)
	}
	approvals := store.Approvals()
	if len(approvals) != 1 || !approvals[0].Approved || approvals[0].Comments != "looks good" {
		t.Fatalf("expected one positive approval, got %+v", approvals)
	}
	audits := store.AuditEntries()
	if audits[len(audits)-1].Action != "APPROVE" {
		t.Fatalf("expected APPROVE audit, got %+v", audits)
	}
}

func TestApproveRejectsEditorRole(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	instance, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approve := ApproveUseCase{Repo: store, Clock: store, IDGen: store}
	err = approve.Execute(context.Background(), ApproveCommand{
		InstanceID: instance.InstanceID,
		ActorID:    "editor-1",
		ActorRole:  "Editor",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for Editor, got %v", err)
	}

	content, _, _ := store.GetContent(context.Background(), "c-1")
	if content.Status != entities.StatusInReview {
		t.Fatalf("denied approve must not mutate, got %s", content.Status)
	}
	if len(store.AuditEntries()) != 1 {
		t.Fatalf("denied approve must not audit")
	}
}

func TestApproveRequiresInReviewContent(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	instance, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Desync the content status from the instance reference.
	content, _, _ := store.GetContent(context.Background(), "c-1")
	content.Status = entities.StatusPublished
	store.SeedContent(content)

	approve := ApproveUseCase{Repo: store, Clock: store, IDGen: store}
	err = approve.Execute(context.Background(), ApproveCommand{
		InstanceID: instance.InstanceID,
		ActorID:    "approver-1",
		ActorRole:  "Approver",
	})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestRequestChangesCancelsInstance(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	instance, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	reject := RequestChangesUseCase{Repo: store, Clock: store, IDGen: store}
	if err := reject.Execute(context.Background(), RequestChangesCommand{
		InstanceID: instance.InstanceID,
		Comments:   "tighten the intro",
		ActorID:    "editor-1",
		ActorRole:  "Editor",
	}); err != nil {
		t.Fatalf("request changes failed: %v", err)
	}

	content, _, _ := store.GetContent(context.Background(), "c-1")
	if content.Status != entities.StatusDraft {
		t.Fatalf("expected Draft after changes requested, got %s", content.Status)
	}
	updated, _, _ := store.GetInstance(context.Background(), instance.InstanceID)
	if updated.Status != entities.WorkflowCancelled {
		t.Fatalf("expected Cancelled instance, got %s", updated.Status)
	}
	audits := store.AuditEntries()
	if audits[len(audits)-1].Action != "REJECT" {
		t.Fatalf("expected REJECT audit, got %+v", audits)
	}

	// A cancelled instance cannot be acted on again.
	err = reject.Execute(context.Background(), RequestChangesCommand{
		InstanceID: instance.InstanceID,
		ActorID:    "editor-1",
		ActorRole:  "Editor",
	})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on cancelled instance, got %v", err)
	}
}

func TestPublishSetsPublishAt(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	instance, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	approve := ApproveUseCase{Repo: store, Clock: store, IDGen: store}
	if err := approve.Execute(context.Background(), ApproveCommand{
		InstanceID: instance.InstanceID,
		ActorID:    "approver-1",
		ActorRole:  "Approver",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	publish := PublishUseCase{Repo: store, Clock: store, IDGen: store}
	if err := publish.Execute(context.Background(), PublishCommand{
		InstanceID: instance.InstanceID,
		ActorID:    "publisher-1",
		ActorRole:  "Publisher",
	}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	content, _, _ := store.GetContent(context.Background(), "c-1")
	if content.Status != entities.StatusPublished {
		t.Fatalf("expected Published, got %s", content.Status)
	}
	if content.PublishAt == nil {
		t.Fatalf("expected publish_at set")
	}
	audits := store.AuditEntries()
	if audits[len(audits)-1].Action != "PUBLISH" {
		t.Fatalf("expected PUBLISH audit, got %+v", audits)
	}
}

func TestPublishRequiresApprovedContent(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	instance, err := submitUseCase(store).Execute(context.Background(), SubmitForReviewCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	publish := PublishUseCase{Repo: store, Clock: store, IDGen: store}
	err = publish.Execute(context.Background(), PublishCommand{
		InstanceID: instance.InstanceID,
		ActorID:    "publisher-1",
		ActorRole:  "Publisher",
	})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state publishing InReview content, got %v", err)
	}
}

func TestUnpublishDeniedForAuthor(t *testing.T) {
	published := draftContent("c-1")
	published.Status = entities.StatusPublished
	store := memory.NewStore([]entities.ContentRef{published}, nil)

	unpublish := UnpublishUseCase{Repo: store, Clock: store, IDGen: store}
	err := unpublish.Execute(context.Background(), UnpublishCommand{
		ContentID: "c-1",
		ActorID:   "author-1",
		ActorRole: "Author",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for author, got %v", err)
	}
	content, _, _ := store.GetContent(context.Background(), "c-1")
	if content.Status != entities.StatusPublished {
		t.Fatalf("denied unpublish must not mutate, got %s", content.Status)
	}
	if len(store.AuditEntries()) != 0 {
		t.Fatalf("denied unpublish must not audit")
	}
}

func TestUnpublishFlipsPublishedContent(t *testing.T) {
	published := draftContent("c-1")
	published.Status = entities.StatusPublished
	store := memory.NewStore([]entities.ContentRef{published}, nil)

	unpublish := UnpublishUseCase{Repo: store, Clock: store, IDGen: store}
	if err := unpublish.Execute(context.Background(), UnpublishCommand{
		ContentID: "c-1",
		ActorID:   "admin-1",
		ActorRole: "Admin",
	}); err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}

	content, _, _ := store.GetContent(context.Background(), "c-1")
	if content.Status != entities.StatusUnpublished || content.UnpublishAt == nil {
		t.Fatalf("expected Unpublished with unpublish_at, got %+v", content)
	}
	audits := store.AuditEntries()
	if len(audits) != 1 || audits[0].Action != "UNPUBLISH" {
		t.Fatalf("expected one UNPUBLISH audit, got %+v", audits)
	}
}

func TestUnpublishRequiresPublishedContent(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	unpublish := UnpublishUseCase{Repo: store, Clock: store, IDGen: store}
	err := unpublish.Execute(context.Background(), UnpublishCommand{
		ContentID: "c-1",
		ActorID:   "admin-1",
		ActorRole: "Admin",
	})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestScheduleValidatesInstants(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	schedule := ScheduleUseCase{Repo: store, Clock: store}

	past := time.Now().UTC().Add(-time.Hour)
	if _, err := schedule.Execute(context.Background(), ScheduleCommand{
		ContentID: "c-1",
		PublishAt: past,
		ActorID:   "approver-1",
		ActorRole: "Approver",
	}); !errors.Is(err, domainerrors.ErrInvalidSchedule) {
		t.Fatalf("expected invalid schedule for past publish_at, got %v", err)
	}

	publishAt := time.Now().UTC().Add(24 * time.Hour)
	badUnpublish := publishAt.Add(-time.Hour)
	if _, err := schedule.Execute(context.Background(), ScheduleCommand{
		ContentID:   "c-1",
		PublishAt:   publishAt,
		UnpublishAt: &badUnpublish,
		ActorID:     "approver-1",
		ActorRole:   "Approver",
	}); !errors.Is(err, domainerrors.ErrInvalidSchedule) {
		t.Fatalf("expected invalid schedule for inverted window, got %v", err)
	}
}

func TestScheduleKeepsStatusAndAuditsMetadata(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	schedule := ScheduleUseCase{Repo: store, Clock: store}

	publishAt := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	content, err := schedule.Execute(context.Background(), ScheduleCommand{
		ContentID: "c-1",
		PublishAt: publishAt,
		ActorID:   "approver-1",
		ActorRole: "Approver",
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if content.Status != entities.StatusDraft {
		t.Fatalf("schedule must not change status, got %s", content.Status)
	}
	if content.PublishAt == nil || !content.PublishAt.Equal(publishAt) {
		t.Fatalf("expected publish_at %v, got %v", publishAt, content.PublishAt)
	}

	audits := store.AuditEntries()
	if len(audits) != 1 || audits[0].Action != "UPDATE" {
		t.Fatalf("expected one UPDATE audit, got %+v", audits)
	}
	if audits[0].Metadata["publish_at"] != publishAt.Format(time.RFC3339) {
		t.Fatalf("expected schedule metadata, got %+v", audits[0].Metadata)
	}
}

func TestScheduleDeniedForEditor(t *testing.T) {
	store := memory.NewStore([]entities.ContentRef{draftContent("c-1")}, nil)
	schedule := ScheduleUseCase{Repo: store, Clock: store}
	_, err := schedule.Execute(context.Background(), ScheduleCommand{
		ContentID: "c-1",
		PublishAt: time.Now().UTC().Add(time.Hour),
		ActorID:   "editor-1",
		ActorRole: "Editor",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for editor, got %v", err)
	}
}
