package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"resumeforge/internal/database"
	"resumeforge/internal/resume"
)

// fakeStore 是内存版持久化网关，带可选的创建延迟用于并发保存测试。
type fakeStore struct {
	mu          sync.Mutex
	nextID      uint
	records     map[uint]database.ResumeRecord
	createDelay time.Duration
	createCalls int
	updateCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, records: make(map[uint]database.ResumeRecord)}
}

func (f *fakeStore) Create(ctx context.Context, ownerID uint, doc resume.Document) (*database.ResumeRecord, error) {
	if f.createDelay > 0 {
		time.Sleep(f.createDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	rec := database.ResumeRecord{
		ID:       f.nextID,
		OwnerID:  ownerID,
		Status:   database.ResumeStatusDraft,
		Document: doc.Clone(),
	}
	f.nextID++
	f.records[rec.ID] = rec
	return &rec, nil
}

func (f *fakeStore) Update(ctx context.Context, id, ownerID uint, doc resume.Document) (*database.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	rec, ok := f.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, database.ErrResumeNotFound
	}
	rec.Document = doc.Clone()
	f.records[id] = rec
	return &rec, nil
}

func (f *fakeStore) List(ctx context.Context, ownerID uint) ([]database.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []database.ResumeRecord
	for _, rec := range f.records {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id, ownerID uint) (*database.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, database.ErrResumeNotFound
	}
	return &rec, nil
}

func (f *fakeStore) Delete(ctx context.Context, id, ownerID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok || rec.OwnerID != ownerID {
		return database.ErrResumeNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) SetArtifact(ctx context.Context, id uint, objectKey, fileName string, size int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return database.ErrResumeNotFound
	}
	rec.PdfObjectKey = objectKey
	rec.PdfFileName = fileName
	rec.PdfFileSize = size
	rec.Status = database.ResumeStatusCompleted
	f.records[id] = rec
	return nil
}

type fakeExporter struct {
	mu       sync.Mutex
	requests []uint
	err      error
}

func (f *fakeExporter) RequestExport(ctx context.Context, resumeID, ownerID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, resumeID)
	return nil
}

func newTestSession(t *testing.T) (*Session, *fakeStore, *fakeExporter) {
	t.Helper()
	store := newFakeStore()
	exporter := &fakeExporter{}
	return NewManager(store, exporter).Open(7), store, exporter
}

func TestOpenSeedsBlankDocumentAtFirstStep(t *testing.T) {
	session, _, _ := newTestSession(t)
	snap := session.Snapshot()

	if snap.Step != StepPersonal {
		t.Fatalf("expected first step personal, got %s", snap.Step)
	}
	if snap.Document.Title != resume.DefaultTitle {
		t.Fatalf("expected default title, got %q", snap.Document.Title)
	}
	if len(snap.Document.Education) != 1 || len(snap.Document.Experience) != 1 {
		t.Fatal("expected one seeded blank education and experience entry")
	}
	if len(snap.Document.Skills) != 0 {
		t.Fatal("expected no seeded skills")
	}
}

func TestAdvanceAndRetreatClampAtEnds(t *testing.T) {
	session, _, _ := newTestSession(t)

	if got := session.Retreat(); got != StepPersonal {
		t.Fatalf("retreat at first step should stay, got %s", got)
	}
	for i := 0; i < len(Steps)+3; i++ {
		session.Advance()
	}
	if snap := session.Snapshot(); snap.Step != StepPreview {
		t.Fatalf("advance at last step should stay, got %s", snap.Step)
	}
	if got := session.Advance(); got != StepPreview {
		t.Fatalf("expected preview, got %s", got)
	}
}

func TestJumpSkipsIntermediateSteps(t *testing.T) {
	session, _, _ := newTestSession(t)
	session.Jump(StepProjects)
	if snap := session.Snapshot(); snap.Step != StepProjects {
		t.Fatalf("expected projects, got %s", snap.Step)
	}
}

func TestRemoveEntryKeepsRemainingValues(t *testing.T) {
	session, _, _ := newTestSession(t)

	firstID, err := session.AppendEntry(SectionExperience)
	if err != nil {
		t.Fatal(err)
	}
	secondID, err := session.AppendEntry(SectionExperience)
	if err != nil {
		t.Fatal(err)
	}
	if firstID == secondID {
		t.Fatal("entry identifiers must be unique")
	}

	if err := session.UpdateEntry(SectionExperience, firstID, "company", "Acme"); err != nil {
		t.Fatal(err)
	}
	if err := session.UpdateEntry(SectionExperience, secondID, "company", "Globex"); err != nil {
		t.Fatal(err)
	}

	if err := session.RemoveEntry(SectionExperience, firstID); err != nil {
		t.Fatal(err)
	}

	snap := session.Snapshot()
	// 一条种子条目加剩下的那条。
	if len(snap.Document.Experience) != 2 {
		t.Fatalf("expected 2 experience entries, got %d", len(snap.Document.Experience))
	}
	last := snap.Document.Experience[len(snap.Document.Experience)-1]
	if last.ID != secondID || last.Company != "Globex" {
		t.Fatalf("remaining entry lost its values: %+v", last)
	}
}

func TestRemoveLastEntryLeavesEmptySection(t *testing.T) {
	session, _, _ := newTestSession(t)
	snap := session.Snapshot()
	seeded := snap.Document.Education[0].ID

	if err := session.RemoveEntry(SectionEducation, seeded); err != nil {
		t.Fatal(err)
	}
	if snap = session.Snapshot(); len(snap.Document.Education) != 0 {
		t.Fatalf("expected empty education section, got %d entries", len(snap.Document.Education))
	}
}

func TestUpdateEntryUnknownID(t *testing.T) {
	session, _, _ := newTestSession(t)
	err := session.UpdateEntry(SectionExperience, "missing", "company", "Acme")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestAddSkillTrimsAndClearsDraft(t *testing.T) {
	session, _, _ := newTestSession(t)

	session.StageSkill("  Go  ", resume.SkillTechnical)
	skill, err := session.AddSkill()
	if err != nil {
		t.Fatal(err)
	}
	if skill.Name != "Go" {
		t.Fatalf("expected trimmed name, got %q", skill.Name)
	}

	// 暂存区已清空，重复提交应被拒绝。
	if _, err := session.AddSkill(); !errors.Is(err, ErrBlankSkill) {
		t.Fatalf("expected ErrBlankSkill after draft cleared, got %v", err)
	}
}

func TestAddSkillRejectsBlankName(t *testing.T) {
	session, _, _ := newTestSession(t)
	session.StageSkill("   ", resume.SkillSoft)
	if _, err := session.AddSkill(); !errors.Is(err, ErrBlankSkill) {
		t.Fatalf("expected ErrBlankSkill, got %v", err)
	}
	if snap := session.Snapshot(); len(snap.Document.Skills) != 0 {
		t.Fatal("blank skill must not be appended")
	}
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	session, store, _ := newTestSession(t)
	ctx := context.Background()

	first, err := session.Save(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == 0 {
		t.Fatal("expected persisted identifier")
	}

	session.SetTitle("Backend Engineer")
	second, err := session.Save(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatalf("second save must update in place, got new id %d", second.ID)
	}
	if store.createCalls != 1 || store.updateCalls != 1 {
		t.Fatalf("expected 1 create and 1 update, got %d/%d", store.createCalls, store.updateCalls)
	}
}

func TestConcurrentFirstSaveCreatesSingleRecord(t *testing.T) {
	store := newFakeStore()
	store.createDelay = 50 * time.Millisecond
	session := NewManager(store, &fakeExporter{}).Open(7)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := session.Save(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if store.createCalls != 1 {
		t.Fatalf("double-triggered first save must create once, got %d creates", store.createCalls)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected a single record, got %d", len(store.records))
	}
}

func TestLoadReplacesDocument(t *testing.T) {
	session, store, _ := newTestSession(t)
	ctx := context.Background()

	doc := resume.NewDocument()
	doc.Title = "Loaded"
	rec, err := store.Create(ctx, 7, doc)
	if err != nil {
		t.Fatal(err)
	}

	session.SetTitle("Unsaved local edit")
	if err := session.Load(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}

	snap := session.Snapshot()
	if snap.Document.Title != "Loaded" {
		t.Fatalf("expected loaded title, got %q", snap.Document.Title)
	}
	if snap.RecordID != rec.ID {
		t.Fatalf("expected record id %d, got %d", rec.ID, snap.RecordID)
	}
}

func TestLoadFailureKeepsSessionState(t *testing.T) {
	session, _, _ := newTestSession(t)
	session.SetTitle("Keep me")

	err := session.Load(context.Background(), 999)
	if !errors.Is(err, database.ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
	if snap := session.Snapshot(); snap.Document.Title != "Keep me" {
		t.Fatal("failed load must not touch session state")
	}
}

func TestExportSavesImplicitlyWhenUnsaved(t *testing.T) {
	session, store, exporter := newTestSession(t)

	id, err := session.Export(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if store.createCalls != 1 {
		t.Fatalf("expected implicit save, got %d creates", store.createCalls)
	}
	if len(exporter.requests) != 1 || exporter.requests[0] != id {
		t.Fatalf("expected export request for %d, got %v", id, exporter.requests)
	}
}

func TestExportDoesNotResaveWhenAlreadyPersisted(t *testing.T) {
	session, store, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := session.Save(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := session.Export(ctx); err != nil {
		t.Fatal(err)
	}
	if store.createCalls != 1 || store.updateCalls != 0 {
		t.Fatalf("export after save must not persist again, got %d/%d", store.createCalls, store.updateCalls)
	}
}

func TestManagerScopesSessionsByOwner(t *testing.T) {
	manager := NewManager(newFakeStore(), &fakeExporter{})
	session := manager.Open(7)

	if _, err := manager.Get(session.ID(), 8); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for other owner, got %v", err)
	}
	if _, err := manager.Get(session.ID(), 7); err != nil {
		t.Fatal(err)
	}
	if err := manager.Close(session.ID(), 7); err != nil {
		t.Fatal(err)
	}
	if _, err := manager.Get(session.ID(), 7); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("closed session must be gone")
	}
}
