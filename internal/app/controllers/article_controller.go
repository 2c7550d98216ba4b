package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// ArticleController handles blog articles
type ArticleController struct {
	articleService services.ArticleService
	images         imagedata.Encoder
}

// NewArticleController creates a new ArticleController
func NewArticleController(articleService services.ArticleService, images imagedata.Encoder) *ArticleController {
	return &ArticleController{
		articleService: articleService,
		images:         images,
	}
}

// ListArticles godoc
// @Summary List published articles
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param tag query string false "Tag filter"
// @Success 200 {object} dto.APIResponse{data=[]dto.ArticleResponse}
// @Router /articles [get]
func (c *ArticleController) ListArticles(ctx *gin.Context) {
	articles, err := c.articleService.ListPublished(ctx, ctx.Query("tag"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(articles))
}

// GetUserArticles godoc
// @Summary List a user's articles
// @Description Drafts are included only when the viewer is the author
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Author ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ArticleResponse}
// @Router /users/{id}/articles [get]
func (c *ArticleController) GetUserArticles(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	articles, err := c.articleService.ListByAuthor(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(articles))
}

// CreateArticle godoc
// @Summary Write an article
// @Tags articles
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param content formData string true "Body"
// @Param tags formData []string false "Tags"
// @Param status formData string false "published (default) or draft"
// @Param cover formData file false "Cover image"
// @Success 201 {object} dto.APIResponse{data=dto.ArticleResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /articles [post]
func (c *ArticleController) CreateArticle(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateArticleRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	cover, ok := uploadedImage(ctx, c.images, "cover")
	if !ok {
		return
	}
	if cover != "" {
		req.CoverImageURL = cover
	}

	article, err := c.articleService.CreateArticle(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(article))
}

// GetArticle godoc
// @Summary Read an article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleResponse}
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id} [get]
func (c *ArticleController) GetArticle(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	article, err := c.articleService.GetArticle(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article))
}

// UpdateArticle godoc
// @Summary Edit an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body dto.UpdateArticleRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id} [patch]
func (c *ArticleController) UpdateArticle(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	article, err := c.articleService.UpdateArticle(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article))
}

// DeleteArticle godoc
// @Summary Delete an article
// @Tags articles
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id} [delete]
func (c *ArticleController) DeleteArticle(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.articleService.DeleteArticle(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// React godoc
// @Summary React to an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body dto.ReactRequest true "Reaction kind"
// @Success 200 {object} dto.APIResponse{data=models.Reactions}
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id}/reactions [post]
func (c *ArticleController) React(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.ReactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	reactions, err := c.articleService.React(ctx, userID, ctx.Param("id"), req.Kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reactions))
}

// AddComment godoc
// @Summary Comment on an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body dto.AddCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id}/comments [post]
func (c *ArticleController) AddComment(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	comment, err := c.articleService.AddComment(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}
