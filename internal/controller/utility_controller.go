package controller

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"text2learn_backend/internal/service"
	"text2learn_backend/internal/util"
)

// UtilityController 视频搜索、独立翻译等辅助接口
type UtilityController struct {
	YouTubeService *service.YouTubeService
	Generation     *service.GenerationService
}

func NewUtilityController(youtubeService *service.YouTubeService, generation *service.GenerationService) *UtilityController {
	return &UtilityController{
		YouTubeService: youtubeService,
		Generation:     generation,
	}
}

// SearchVideos godoc
// @Summary 搜索教学视频
// @Description 为视频内容块检索 YouTube 候选视频
// @Tags 工具
// @Produce  json
// @Security BearerAuth
// @Param   query query string true "搜索关键词"
// @Param   maxResults query int false "返回条数，缺省用配置默认值"
// @Success 200 {object} util.Response{data=[]service.YouTubeVideo}
// @Failure 400 {object} util.Response "关键词为空"
// @Router /api/youtube/search [get]
func (c *UtilityController) SearchVideos(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("query"))
	if query == "" {
		util.BadRequest(ctx, "query is required")
		return
	}
	maxResults, _ := strconv.Atoi(ctx.Query("maxResults"))

	videos, err := c.YouTubeService.Search(ctx.Request.Context(), query, maxResults)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// TranslateTextRequest 独立文本翻译请求
// swagger:model TranslateTextRequest
type TranslateTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// TranslateHinglish godoc
// @Summary 文本翻译为 Hinglish
// @Description 不关联任何课时的独立翻译接口
// @Tags 工具
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body TranslateTextRequest true "待翻译文本"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "文本为空"
// @Failure 503 {object} util.Response "所有提供商不可用"
// @Router /api/translate/hinglish [post]
func (c *UtilityController) TranslateHinglish(ctx *gin.Context) {
	var req TranslateTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	translated, err := c.Generation.TranslateToHinglish(ctx.Request.Context(), req.Text)
	if err != nil {
		util.GenerationError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"hinglishText": translated})
}
