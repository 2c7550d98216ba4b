package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// PostController handles the newsfeed
type PostController struct {
	postService services.PostService
	feedService services.FeedService
	images      imagedata.Encoder
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, feedService services.FeedService, images imagedata.Encoder) *PostController {
	return &PostController{
		postService: postService,
		feedService: feedService,
		images:      images,
	}
}

// GetFeed godoc
// @Summary Get the newsfeed
// @Description Returns posts filtered by hashtag or search text and an optional date range. A hashtag filter takes precedence over search.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive text search over content and author name"
// @Param hashtag query string false "Hashtag filter, with or without #"
// @Param startDate query string false "Inclusive start day (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end day (YYYY-MM-DD)"
// @Param sort query string false "newest (default) or oldest"
// @Success 200 {object} dto.APIResponse{data=dto.FeedResponse} "Feed retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /posts [get]
func (c *PostController) GetFeed(ctx *gin.Context) {
	var req dto.FeedRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	feed, err := c.feedService.Feed(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feed))
}

// GetHashtags godoc
// @Summary Trending hashtags
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of tags" default(10)
// @Success 200 {object} dto.APIResponse{data=[]feed.TagCount} "Hashtags retrieved successfully"
// @Router /posts/hashtags [get]
func (c *PostController) GetHashtags(ctx *gin.Context) {
	tags, err := c.feedService.Hashtags(ctx, intQuery(ctx, "limit", 10))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tags))
}

// CreatePost godoc
// @Summary Create a post
// @Description Creates a post as the acting user. Accepts JSON or multipart with an optional image file.
// @Tags posts
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param content formData string true "Post content"
// @Param eventId formData string false "Event to share"
// @Param image formData file false "Post image"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	image, ok := uploadedImage(ctx, c.images, "image")
	if !ok {
		return
	}
	if image != "" {
		req.ImageURL = image
	}

	post, err := c.postService.CreatePost(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// GetPost godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	post, err := c.postService.GetPost(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// EditPost godoc
// @Summary Edit a post
// @Description Only the author may edit a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.EditPostRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [patch]
func (c *PostController) EditPost(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.EditPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	post, err := c.postService.EditPost(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204 "Post deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.postService.DeletePost(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.AddCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	comment, err := c.postService.AddComment(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// React godoc
// @Summary React to a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.ReactRequest true "Reaction kind"
// @Success 200 {object} dto.APIResponse{data=models.Reactions}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/reactions [post]
func (c *PostController) React(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.ReactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	reactions, err := c.postService.React(ctx, userID, ctx.Param("id"), req.Kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reactions))
}

// Unreact godoc
// @Summary Remove a reaction
// @Description Decrements the counter, never below zero
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param kind path string true "Reaction kind"
// @Success 200 {object} dto.APIResponse{data=models.Reactions}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/reactions/{kind} [delete]
func (c *PostController) Unreact(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	reactions, err := c.postService.Unreact(ctx, userID, ctx.Param("id"), models.ReactionKind(ctx.Param("kind")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reactions))
}

// GetUserPosts godoc
// @Summary List a user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/posts [get]
func (c *PostController) GetUserPosts(ctx *gin.Context) {
	posts, err := c.postService.ListByAuthor(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}
