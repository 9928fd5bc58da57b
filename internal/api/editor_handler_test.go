package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/editor"
	"resumeforge/internal/resume"
)

func TestOpenSessionSeedsBlankResume(t *testing.T) {
	manager := editor.NewManager(newTestStore(t), nil)
	h := NewEditorHandler(manager)

	c, w := newResumeTestContext(t, http.MethodPost, "/v1/editor", nil, 1, nil)
	h.OpenSession(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	var resp snapshotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected session id")
	}
	if resp.Step != editor.StepPersonal {
		t.Fatalf("expected first step, got %s", resp.Step)
	}
	if resp.Document.Title != resume.DefaultTitle {
		t.Fatalf("expected default title, got %q", resp.Document.Title)
	}
}

func TestGetSessionRejectsOtherOwner(t *testing.T) {
	manager := editor.NewManager(newTestStore(t), nil)
	h := NewEditorHandler(manager)
	session := manager.Open(1)

	params := gin.Params{{Key: "sid", Value: session.ID()}}
	c, w := newResumeTestContext(t, http.MethodGet, "/v1/editor/"+session.ID(), nil, 2, params)
	h.GetSession(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other owner, got %d", w.Code)
	}
}

func TestJumpValidatesStepName(t *testing.T) {
	manager := editor.NewManager(newTestStore(t), nil)
	h := NewEditorHandler(manager)
	session := manager.Open(1)

	params := gin.Params{{Key: "sid", Value: session.ID()}}
	c, w := newResumeTestContext(t, http.MethodPost, "/v1/editor/x/jump", []byte(`{"step":"nonsense"}`), 1, params)
	h.Jump(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown step, got %d", w.Code)
	}
}
