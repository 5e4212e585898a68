package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"text2learn_backend/internal/service"
	"text2learn_backend/internal/util"
)

type LessonController struct {
	LessonService *service.LessonService
	ExportService *service.ExportService
}

func NewLessonController(lessonService *service.LessonService, exportService *service.ExportService) *LessonController {
	return &LessonController{
		LessonService: lessonService,
		ExportService: exportService,
	}
}

// Get godoc
// @Summary 课时详情
// @Tags 课时
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.LessonService.GetLesson(id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "课时不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// Update godoc
// @Summary 编辑课时
// @Description 部分更新，缺省字段保持不变。内容块逐块校验，不合法则整体拒绝
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Param   body body service.LessonUpdate true "更新字段"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response "内容块不合法"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var update service.LessonUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.UpdateLesson(ctx.Request.Context(), id, update)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx, "课时不存在")
		case errors.Is(err, util.ErrMalformedOutput):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// GenerateContent godoc
// @Summary 生成课时内容
// @Description 调用 AI 生成课时的目标与内容块并覆盖写入。重复生成最后写入获胜
// @Tags 课时
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   moduleId path int true "模块ID"
// @Param   lessonId path int true "课时ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "归属链不匹配"
// @Failure 502 {object} util.Response "模型输出畸形"
// @Failure 503 {object} util.Response "所有提供商不可用"
// @Router /api/courses/{id}/modules/{moduleId}/lessons/{lessonId}/generate [post]
func (c *LessonController) GenerateContent(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}
	lessonID, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	lesson, err := c.LessonService.GenerateContent(ctx.Request.Context(), courseID, moduleID, lessonID)
	if err != nil {
		util.GenerationError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// ToggleComplete godoc
// @Summary 切换课时完成状态
// @Description 未完成→已完成，已完成→未完成，返回切换后的状态
// @Tags 课时
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id}/complete [post]
func (c *LessonController) ToggleComplete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	completed, err := c.LessonService.ToggleComplete(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "课时不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"lessonId": id, "completed": completed})
}

// ListCompleted godoc
// @Summary 当前用户已完成的课时 ID 列表
// @Tags 课时
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]int}
// @Router /api/lessons/completed [get]
func (c *LessonController) ListCompleted(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	ids, err := c.LessonService.CompletedLessons(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ids)
}

// TranslateRequest 课时翻译请求，text 缺省时翻译课时正文
// swagger:model TranslateRequest
type TranslateRequest struct {
	Text string `json:"text"`
}

// Translate godoc
// @Summary 课时内容翻译为 Hinglish
// @Description 翻译结果持久化在课时的 hinglishText 字段
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Param   body body TranslateRequest false "待翻译文本，缺省时取课时正文"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "课时不存在"
// @Failure 503 {object} util.Response "所有提供商不可用"
// @Router /api/lessons/{id}/translate [post]
func (c *LessonController) Translate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req TranslateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	lesson, err := c.LessonService.TranslateLesson(ctx.Request.Context(), id, req.Text)
	if err != nil {
		util.GenerationError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// Export godoc
// @Summary 导出课时为 PDF
// @Description 渲染课时内容为 PDF 上传到存储后端，返回下载地址
// @Tags 课时
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id}/export [post]
func (c *LessonController) Export(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	url, err := c.ExportService.ExportLessonPDF(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "课时不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
