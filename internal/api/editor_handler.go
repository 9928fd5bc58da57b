package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/editor"
	"resumeforge/internal/resume"
	"resumeforge/internal/tasks"
)

// EditorHandler 把编辑会话的各个交互暴露为 HTTP 端点。
type EditorHandler struct {
	manager *editor.Manager
}

// NewEditorHandler 构造编辑会话处理器。
func NewEditorHandler(manager *editor.Manager) *EditorHandler {
	return &EditorHandler{manager: manager}
}

type snapshotResponse struct {
	SessionID string          `json:"session_id"`
	RecordID  uint            `json:"record_id,omitempty"`
	Step      editor.Step     `json:"step"`
	Document  resume.Document `json:"document"`
}

func newSnapshotResponse(snap editor.Snapshot) snapshotResponse {
	return snapshotResponse{
		SessionID: snap.SessionID,
		RecordID:  snap.RecordID,
		Step:      snap.Step,
		Document:  snap.Document,
	}
}

type openSessionRequest struct {
	ResumeID uint   `json:"resume_id"`
	Template string `json:"template"`
}

// OpenSession 新建编辑会话；给了 resume_id 则加载已有简历继续编辑。
func (h *EditorHandler) OpenSession(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req openSessionRequest
	// 允许空 body：默认开一份空白简历。
	_ = c.ShouldBindJSON(&req)

	session := h.manager.Open(userID)
	if req.ResumeID > 0 {
		if err := session.Load(c.Request.Context(), req.ResumeID); err != nil {
			_ = h.manager.Close(session.ID(), userID)
			if errors.Is(err, database.ErrResumeNotFound) {
				NotFound(c, "resume not found")
				return
			}
			Internal(c, "failed to load resume")
			return
		}
	}
	if req.Template != "" {
		session.SetTemplate(req.Template)
	}

	c.JSON(http.StatusCreated, newSnapshotResponse(session.Snapshot()))
}

// GetSession 返回会话快照。
func (h *EditorHandler) GetSession(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSnapshotResponse(session.Snapshot()))
}

// CloseSession 丢弃会话，未保存的修改随之丢失。
func (h *EditorHandler) CloseSession(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if err := h.manager.Close(c.Param("sid"), userID); err != nil {
		NotFound(c, "session not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// Advance 前进一步。
func (h *EditorHandler) Advance(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}
	session.Advance()
	c.JSON(http.StatusOK, newSnapshotResponse(session.Snapshot()))
}

// Retreat 回退一步。
func (h *EditorHandler) Retreat(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}
	session.Retreat()
	c.JSON(http.StatusOK, newSnapshotResponse(session.Snapshot()))
}

type jumpRequest struct {
	Step string `json:"step" binding:"required"`
}

// Jump 直接切换到任意步骤。
func (h *EditorHandler) Jump(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	step, err := editor.ParseStep(req.Step)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	session.Jump(step)
	c.JSON(http.StatusOK, newSnapshotResponse(session.Snapshot()))
}

type titleRequest struct {
	Title string `json:"title" binding:"required"`
}

// SetTitle 更新简历标题。
func (h *EditorHandler) SetTitle(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	session.SetTitle(req.Title)
	c.JSON(http.StatusOK, newSnapshotResponse(session.Snapshot()))
}

type templateRequest struct {
	Template string `json:"template" binding:"required"`
}

// SetTemplate 切换模板变体。
func (h *EditorHandler) SetTemplate(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	applied := session.SetTemplate(req.Template)
	c.JSON(http.StatusOK, gin.H{"template": applied})
}

type fieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdatePersonal 更新个人信息块的单个字段。
func (h *EditorHandler) UpdatePersonal(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req fieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := session.UpdatePersonal(req.Field, req.Value); err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// AppendEntry 在小节末尾追加一条空白条目。
func (h *EditorHandler) AppendEntry(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	section, err := editor.ParseSection(c.Param("section"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	entryID, err := session.AppendEntry(section)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry_id": entryID})
}

// UpdateEntry 更新条目的单个字段。
func (h *EditorHandler) UpdateEntry(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	section, err := editor.ParseSection(c.Param("section"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	var req fieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := session.UpdateEntry(section, c.Param("entryID"), req.Field, req.Value); err != nil {
		if errors.Is(err, editor.ErrEntryNotFound) {
			NotFound(c, "entry not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveEntry 删除指定条目。
func (h *EditorHandler) RemoveEntry(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	section, err := editor.ParseSection(c.Param("section"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := session.RemoveEntry(section, c.Param("entryID")); err != nil {
		if errors.Is(err, editor.ErrEntryNotFound) {
			NotFound(c, "entry not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

type stageSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// StageSkill 把候选技能放入暂存区。
func (h *EditorHandler) StageSkill(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req stageSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	session.StageSkill(req.Name, resume.ParseSkillCategory(req.Category))
	c.Status(http.StatusNoContent)
}

// AddSkill 提交暂存的技能。
func (h *EditorHandler) AddSkill(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	skill, err := session.AddSkill()
	if err != nil {
		if errors.Is(err, editor.ErrBlankSkill) {
			BadRequest(c, "skill name is blank")
			return
		}
		Internal(c, "failed to add skill")
		return
	}
	c.JSON(http.StatusCreated, skill)
}

// RemoveSkill 删除指定技能。
func (h *EditorHandler) RemoveSkill(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	if err := session.RemoveSkill(c.Param("entryID")); err != nil {
		NotFound(c, "skill not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// Save 把整份文档写入持久化网关。
func (h *EditorHandler) Save(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	record, err := session.Save(c.Request.Context())
	if err != nil {
		Internal(c, "failed to save resume")
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(*record))
}

// Export 请求导出当前会话的简历，必要时先隐式保存。
func (h *EditorHandler) Export(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	ctx := tasks.WithCorrelationID(c.Request.Context(), middleware.GetCorrelationID(c))
	recordID, err := session.Export(ctx)
	if err != nil {
		if errors.Is(err, editor.ErrImplicitSave) {
			Internal(c, "failed to save resume before export")
			return
		}
		Internal(c, "failed to enqueue pdf export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":   "PDF export request accepted",
		"resume_id": recordID,
	})
}

func (h *EditorHandler) sessionFromRequest(c *gin.Context) (*editor.Session, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, false
	}

	session, err := h.manager.Get(c.Param("sid"), userID)
	if err != nil {
		NotFound(c, "session not found")
		return nil, false
	}
	return session, true
}
