package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"text2learn_backend/internal/service"
	"text2learn_backend/internal/util"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// GenerateCourseRequest 课程生成请求
// swagger:model GenerateCourseRequest
type GenerateCourseRequest struct {
	Topic string `json:"topic"`
}

// Generate godoc
// @Summary 根据主题生成课程
// @Description 调用 AI 生成课程大纲并持久化完整层级，课时内容留待单独生成
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateCourseRequest true "课程主题"
// @Success 201 {object} util.Response{data=model.Course} "生成成功"
// @Failure 400 {object} util.Response "主题为空"
// @Failure 502 {object} util.Response "模型输出畸形"
// @Failure 503 {object} util.Response "所有提供商不可用"
// @Router /api/courses/generate [post]
func (c *CourseController) Generate(ctx *gin.Context) {
	var req GenerateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.GenerateCourse(ctx.Request.Context(), claims.UserID, req.Topic)
	if err != nil {
		util.GenerationError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// List godoc
// @Summary 当前用户创建的课程列表
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.ListResponse{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.ListByCreator(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ListSaved godoc
// @Summary 当前用户收藏的课程列表
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.ListResponse{data=[]model.Course}
// @Router /api/courses/saved [get]
func (c *CourseController) ListSaved(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.ListSaved(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Description 返回完整的课程→模块→课时层级，按大纲顺序排列
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.CourseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "课程不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程
// @Description 仅创建者可删除，级联移除全部模块与课时
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 403 {object} util.Response "非课程创建者"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	err := c.CourseService.DeleteCourse(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "课程不存在")
		case errors.Is(err, util.ErrNotCourseOwner):
			util.Forbidden(ctx, "仅课程创建者可删除")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// Save godoc
// @Summary 收藏课程
// @Description 幂等操作，重复收藏不报错
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "收藏成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/save [post]
func (c *CourseController) Save(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.SaveCourse(claims.UserID, id); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "课程不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"saved": true})
}

// Unsave godoc
// @Summary 取消收藏
// @Description 幂等操作，未收藏时也返回成功
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "已取消收藏"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/save [delete]
func (c *CourseController) Unsave(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.UnsaveCourse(claims.UserID, id); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "课程不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"saved": false})
}

// parseIDParam 解析路径中的数字 ID，非法时直接写 400 响应
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
