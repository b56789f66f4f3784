package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/middleware"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// imageField is the multipart field carrying a blog image.
const imageField = "image"

// MaxImageSize caps uploaded blog images.
const MaxImageSize = 5 << 20

// DashboardHandler serves the admin-only management API.
type DashboardHandler struct {
	blogs    *services.BlogService
	comments *services.CommentService
	messages *services.MessageService
	users    *services.UserService
	gate     *middleware.Gate
}

func NewDashboardHandler(blogs *services.BlogService, comments *services.CommentService, messages *services.MessageService, users *services.UserService, gate *middleware.Gate) *DashboardHandler {
	return &DashboardHandler{
		blogs:    blogs,
		comments: comments,
		messages: messages,
		users:    users,
		gate:     gate,
	}
}

// RegisterDashboardRoutes registers every dashboard route behind the admin policy
func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.Use(h.gate.Require(middleware.Admin))

	g.GET("/blogs", h.GetBlogs)
	g.GET("/blog/:blogId", h.GetBlog)
	g.POST("/blog", h.CreateBlog)
	g.PUT("/blog/:blogId", h.UpdateBlog)
	g.DELETE("/blog/:blogId", h.DeleteBlog)

	g.GET("/users", h.GetUsers)

	g.GET("/messages", h.GetMessages)
	g.GET("/messages/:msgId", h.GetMessage)
	g.DELETE("/messages/:msgId", h.DeleteMessage)

	g.GET("/comments", h.GetComments)
	g.DELETE("/comments/:commentId", h.DeleteComment)
}

func (h *DashboardHandler) GetBlogs(c echo.Context) error {
	blogs, err := h.blogs.ListBlogs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Blogs fetched successfully", "blogs": blogs})
}

func (h *DashboardHandler) GetBlog(c echo.Context) error {
	blog, err := h.blogs.GetBlog(c.Request().Context(), c.Param("blogId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Blog fetched successfully", "blog": blog})
}

// CreateBlog accepts JSON with an imageUrl or a multipart form with an image file
func (h *DashboardHandler) CreateBlog(c echo.Context) error {
	req, image, err := bindBlog(c)
	if err != nil {
		return err
	}

	blog, err := h.blogs.CreateBlog(c.Request().Context(), req, image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Blog created successfully!", "blog": blog})
}

func (h *DashboardHandler) UpdateBlog(c echo.Context) error {
	req, image, err := bindBlog(c)
	if err != nil {
		return err
	}

	blog, err := h.blogs.UpdateBlog(c.Request().Context(), c.Param("blogId"), req, image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post updated", "blog": blog})
}

func (h *DashboardHandler) DeleteBlog(c echo.Context) error {
	removed, err := h.blogs.DeleteBlog(c.Request().Context(), c.Param("blogId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Blog and its %d comment(s) were deleted successfully", removed),
	})
}

func (h *DashboardHandler) GetUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Users fetched successfully", "users": users})
}

func (h *DashboardHandler) GetMessages(c echo.Context) error {
	messages, err := h.messages.ListMessages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Messages fetched successfully", "messages": messages})
}

func (h *DashboardHandler) GetMessage(c echo.Context) error {
	msg, err := h.messages.GetMessage(c.Request().Context(), c.Param("msgId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Message fetched successfully", "msg": msg})
}

func (h *DashboardHandler) DeleteMessage(c echo.Context) error {
	if err := h.messages.DeleteMessage(c.Request().Context(), c.Param("msgId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Message deleted successfully"})
}

func (h *DashboardHandler) GetComments(c echo.Context) error {
	comments, err := h.comments.ListComments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comments fetched successfully", "comments": comments})
}

func (h *DashboardHandler) DeleteComment(c echo.Context) error {
	if err := h.comments.DeleteComment(c.Request().Context(), c.Param("commentId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}

// bindBlog reads the blog fields and, for multipart requests, the image
// file. A multipart request with neither a file nor an imageUrl yields an
// empty upload so the service answers 415.
func bindBlog(c echo.Context) (models.BlogRequest, *services.ImageUpload, error) {
	var req models.BlogRequest
	if err := bind(c, &req); err != nil {
		return req, nil, err
	}

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		return req, nil, nil
	}

	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			if strings.TrimSpace(req.ImageURL) == "" {
				return req, &services.ImageUpload{}, nil
			}
			return req, nil, nil
		}
		return req, nil, errs.BadRequest(msgInvalidPayload)
	}
	if fh.Size > MaxImageSize {
		return req, nil, errs.UnsupportedMedia("Image is too large.")
	}

	f, err := fh.Open()
	if err != nil {
		return req, nil, errs.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return req, nil, errs.Internal(err)
	}
	return req, &services.ImageUpload{Filename: fh.Filename, Data: data}, nil
}
