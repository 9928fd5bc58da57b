package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeforge/internal/resume"
)

func newTestStore(t *testing.T) *GormResumeStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// 内存库按连接隔离，收紧连接池避免表丢失。
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&User{}, &Resume{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewResumeStore(db)
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := resume.NewDocument()
	doc.Title = "Backend Resume"
	doc.PersonalInfo.FullName = "Ada Lovelace"
	doc.Experience[0].Company = "Analytical Engines Ltd"
	doc.Experience[0].StartDate = "1842-01"
	doc.Skills = append(doc.Skills, resume.Skill{ID: resume.NewEntryID(), Name: "Mathematics", Category: resume.SkillSoft})

	created, err := store.Create(ctx, 1, doc)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("create must assign a record id")
	}
	if created.Status != ResumeStatusDraft {
		t.Fatalf("status = %q, want draft", created.Status)
	}

	loaded, err := store.GetByID(ctx, created.ID, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Document.PersonalInfo.FullName != "Ada Lovelace" {
		t.Fatalf("full name lost in round trip: %+v", loaded.Document.PersonalInfo)
	}
	if loaded.Document.Experience[0].Company != "Analytical Engines Ltd" {
		t.Fatal("experience lost in round trip")
	}
	if len(loaded.Document.Skills) != 1 || loaded.Document.Skills[0].Category != resume.SkillSoft {
		t.Fatalf("skills lost in round trip: %+v", loaded.Document.Skills)
	}
}

func TestStoreScopesByOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, 1, resume.NewDocument())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := store.GetByID(ctx, created.ID, 2); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("cross-owner get: err = %v, want ErrResumeNotFound", err)
	}
	if err := store.Delete(ctx, created.ID, 2); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("cross-owner delete: err = %v, want ErrResumeNotFound", err)
	}
	if _, err := store.Update(ctx, created.ID, 2, resume.NewDocument()); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("cross-owner update: err = %v, want ErrResumeNotFound", err)
	}
}

func TestStoreSetArtifact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, 1, resume.NewDocument())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.SetArtifact(ctx, created.ID, "1/5/my_resume_1.pdf", "my_resume_1.pdf", 12345); err != nil {
		t.Fatalf("set artifact: %v", err)
	}

	loaded, err := store.GetByID(ctx, created.ID, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Status != ResumeStatusCompleted {
		t.Fatalf("status = %q, want completed", loaded.Status)
	}
	if loaded.PdfObjectKey != "1/5/my_resume_1.pdf" || loaded.PdfFileSize != 12345 {
		t.Fatalf("artifact metadata not recorded: %+v", loaded)
	}

	if err := store.SetArtifact(ctx, created.ID+99, "x", "x", 1); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("missing record: err = %v, want ErrResumeNotFound", err)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := resume.NewDocument()
	first.Title = "First"
	second := resume.NewDocument()
	second.Title = "Second"

	if _, err := store.Create(ctx, 1, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := store.Create(ctx, 1, second); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := store.Create(ctx, 2, resume.NewDocument()); err != nil {
		t.Fatalf("create other owner: %v", err)
	}

	records, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2 (owner scoped)", len(records))
	}
}
