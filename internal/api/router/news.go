package router

import (
	"context"
	"net/http"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/DjordjeVuckovic/news-ingest/internal/i18n"
	"github.com/DjordjeVuckovic/news-ingest/internal/ingest"
	"github.com/DjordjeVuckovic/news-ingest/internal/query"
	"github.com/DjordjeVuckovic/news-ingest/pkg/pagination"
	"github.com/labstack/echo/v4"
)

type NewsService interface {
	FetchNews(ctx context.Context, clauses []query.Clause) (*ingest.Summary, error)
	ListNews(ctx context.Context, req pagination.OffsetRequest) (*pagination.OffsetResult[domain.News], error)
}

// FetchRequest is the body of POST /news/fetch.
type FetchRequest struct {
	Query []query.Clause `json:"query"`
}

type FetchResponse struct {
	Message   string `json:"message" example:"News fetched and saved successfully."`
	Fetched   int    `json:"fetched" example:"100"`
	Remaining int    `json:"remaining" example:"250"`
}

type ListResponse struct {
	Message   string        `json:"message" example:"success"`
	Posts     []domain.News `json:"posts"`
	TotalPage int           `json:"totalPage" example:"3"`
}

type NewsRouter struct {
	e       *echo.Echo
	service NewsService
	msgs    *i18n.Messages
}

func NewNewsRouter(e *echo.Echo, service NewsService, msgs *i18n.Messages) *NewsRouter {
	if msgs == nil {
		msgs = i18n.For(i18n.DefaultLanguage)
	}
	return &NewsRouter{
		e:       e,
		service: service,
		msgs:    msgs,
	}
}

func (r *NewsRouter) Bind() {
	g := r.e.Group("/news")
	g.POST("/fetch", r.fetchHandler)
	g.GET("/all", r.listHandler)
}

// fetchHandler godoc
// @Summary Fetch and store news
// @Description Runs one ingestion for the given query. Every provider page is stored in a single transaction; on any failure nothing is kept.
// @Tags news
// @Accept json
// @Produce json
// @Param request body FetchRequest true "Query clauses"
// @Success 200 {object} FetchResponse
// @Failure 400 {object} apperr.ErrorResponse "Invalid query"
// @Failure 500 {object} apperr.ErrorResponse "Configuration or storage failure"
// @Failure 502 {object} apperr.ErrorResponse "Provider unreachable or malformed response"
// @Router /news/fetch [post]
func (r *NewsRouter) fetchHandler(c echo.Context) error {
	var req FetchRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	summary, err := r.service.FetchNews(c.Request().Context(), req.Query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, FetchResponse{
		Message:   r.msgs.NewsFetchedSuccessfully,
		Fetched:   summary.Fetched,
		Remaining: summary.Remaining,
	})
}

// listHandler godoc
// @Summary List stored news
// @Description Returns one page of stored news ordered by creation time.
// @Tags news
// @Produce json
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} ListResponse
// @Failure 400 {object} apperr.ErrorResponse "Invalid pagination"
// @Failure 500 {object} apperr.ErrorResponse "Storage failure"
// @Router /news/all [get]
func (r *NewsRouter) listHandler(c echo.Context) error {
	req := pagination.NewOffsetRequest()
	if err := echo.QueryParamsBinder(c).
		Int("page", &req.Page).
		Int("limit", &req.Limit).
		BindError(); err != nil {
		return apperr.NewValidationWrap("invalid pagination", err)
	}
	if req.Page < 1 || req.Limit < 1 {
		return apperr.NewValidation("page and limit must be at least 1")
	}

	res, err := r.service.ListNews(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListResponse{
		Message:   r.msgs.Success,
		Posts:     res.Items,
		TotalPage: res.TotalPages,
	})
}
