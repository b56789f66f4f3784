package handlers

import (
	"net/http"

	"github.com/anonto42/folio/backend/internal/middleware"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PortfolioHandler serves the public site: blog reads, visitor comments and
// likes, and the contact form.
type PortfolioHandler struct {
	blogs    *services.BlogService
	comments *services.CommentService
	likes    *services.LikeService
	messages *services.MessageService
	gate     *middleware.Gate
}

func NewPortfolioHandler(blogs *services.BlogService, comments *services.CommentService, likes *services.LikeService, messages *services.MessageService, gate *middleware.Gate) *PortfolioHandler {
	return &PortfolioHandler{
		blogs:    blogs,
		comments: comments,
		likes:    likes,
		messages: messages,
		gate:     gate,
	}
}

func (h *PortfolioHandler) RegisterPortfolioRoutes(g *echo.Group) {
	member := h.gate.Require(middleware.Member)

	g.GET("/blogs", h.GetBlogs)
	g.GET("/blog/:blogId", h.GetBlog)
	g.GET("/blog/:blogId/comment", h.GetBlogComments)
	g.POST("/blog/:blogId/comment", h.PostComment, member)

	g.GET("/blog/:blogId/like", h.GetLike, member)
	g.POST("/blog/:blogId/like", h.AddLike, member)
	g.DELETE("/blog/:blogId/like", h.RemoveLike, member)

	g.POST("/message", h.PostMessage)
}

func (h *PortfolioHandler) GetBlogs(c echo.Context) error {
	blogs, err := h.blogs.ListBlogs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Blogs fetched successfully", "blogs": blogs})
}

func (h *PortfolioHandler) GetBlog(c echo.Context) error {
	blog, err := h.blogs.GetBlog(c.Request().Context(), c.Param("blogId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Blog fetched successfully", "blog": blog})
}

func (h *PortfolioHandler) GetBlogComments(c echo.Context) error {
	comments, err := h.comments.ListBlogComments(c.Request().Context(), c.Param("blogId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Blog comments", "comments": comments})
}

func (h *PortfolioHandler) PostComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, _ := middleware.PrincipalFrom(c)
	comment, err := h.comments.PostComment(c.Request().Context(), author, c.Param("blogId"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Comment posted successfully!", "comment": comment})
}

// GetLike reports whether the caller has liked the blog.
func (h *PortfolioHandler) GetLike(c echo.Context) error {
	user, _ := middleware.PrincipalFrom(c)
	liked, err := h.likes.HasLiked(c.Request().Context(), user, c.Param("blogId"))
	if err != nil {
		return err
	}
	if !liked {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "The Like on this blog doesn't exist."})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Like on the blog exist."})
}

func (h *PortfolioHandler) AddLike(c echo.Context) error {
	user, _ := middleware.PrincipalFrom(c)
	likes, err := h.likes.AddLike(c.Request().Context(), user, c.Param("blogId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Like added successfully!", "likes": likes})
}

func (h *PortfolioHandler) RemoveLike(c echo.Context) error {
	user, _ := middleware.PrincipalFrom(c)
	likes, err := h.likes.RemoveLike(c.Request().Context(), user, c.Param("blogId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Like removed successfully!", "likes": likes})
}

func (h *PortfolioHandler) PostMessage(c echo.Context) error {
	var req models.CreateMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.messages.PostMessage(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Message sent successfully!", "msg": msg})
}
