package handlers

import (
	"net/http"

	request "projectease/internal/adapter/http/dto/request"
	response "projectease/internal/adapter/http/dto/response"
	"projectease/internal/adapter/http/middleware"
	"projectease/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler handles HTTP requests for project requests.
type RequestHandler struct {
	usecase usecase.IRequestUseCase
	log     *zap.Logger
}

func NewRequestHandler(uc usecase.IRequestUseCase, log *zap.Logger) *RequestHandler {
	return &RequestHandler{usecase: uc, log: log}
}

// CreateRequest godoc
// @Summary      Submit a project request
// @Description  Registered clients send a bearer token; guests send guest_info.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateRequestRequest  true  "Request"
// @Success      201      {object}  response.RequestResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var payload request.CreateRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateRequest(c.Request.Context(), middleware.ActorFromContext(c), payload.ToInput())
	if err != nil {
		h.fail(c, "create request failed", err)
		return
	}

	c.JSON(http.StatusCreated, response.FromRequest(created))
}

// ListOwn godoc
// @Summary   List the caller's requests, newest first
// @Tags      requests
// @Produce   json
// @Security  Bearer
// @Success   200  {array}   response.RequestResponse
// @Failure   401  {object}  pkg.HTTPError
// @Router    /requests/my [get]
func (h *RequestHandler) ListOwn(c *gin.Context) {
	items, err := h.usecase.ListOwn(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		h.fail(c, "list own requests failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequests(items))
}

// ListAll godoc
// @Summary   List every request (admin)
// @Tags      requests
// @Produce   json
// @Security  Bearer
// @Success   200  {array}   response.RequestResponse
// @Failure   403  {object}  pkg.HTTPError
// @Router    /requests [get]
func (h *RequestHandler) ListAll(c *gin.Context) {
	items, err := h.usecase.ListAll(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		h.fail(c, "list requests failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequests(items))
}

// GetRequest godoc
// @Summary   Get a request (owner or admin)
// @Tags      requests
// @Produce   json
// @Security  Bearer
// @Param     id   path      string  true  "Request ID"
// @Success   200  {object}  response.RequestResponse
// @Failure   403  {object}  pkg.HTTPError
// @Failure   404  {object}  pkg.HTTPError
// @Router    /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	r, err := h.usecase.GetByID(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, "get request failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequest(r))
}

// UpdateRequest godoc
// @Summary   Update status, price, notes or progress (admin)
// @Tags      requests
// @Accept    json
// @Produce   json
// @Security  Bearer
// @Param     id       path      string                        true  "Request ID"
// @Param     request  body      request.UpdateRequestRequest  true  "Update"
// @Success   200      {object}  response.RequestResponse
// @Failure   400      {object}  pkg.HTTPError
// @Failure   409      {object}  pkg.HTTPError
// @Router    /requests/{id} [put]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	var payload request.UpdateRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	r, err := h.usecase.UpdateRequest(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"), payload.ToStatusUpdate())
	if err != nil {
		h.fail(c, "update request failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequest(r))
}

// UpdatePaymentOption godoc
// @Summary   Switch between advance and full payment (owner or admin)
// @Tags      requests
// @Accept    json
// @Produce   json
// @Security  Bearer
// @Param     id       path      string                              true  "Request ID"
// @Param     request  body      request.UpdatePaymentOptionRequest  true  "Option"
// @Success   200      {object}  response.RequestResponse
// @Failure   400      {object}  pkg.HTTPError
// @Failure   409      {object}  pkg.HTTPError
// @Router    /requests/{id}/payment-option [put]
func (h *RequestHandler) UpdatePaymentOption(c *gin.Context) {
	var payload request.UpdatePaymentOptionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	option, err := payload.ResolveOption()
	if err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	r, err := h.usecase.UpdatePaymentOption(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"), option)
	if err != nil {
		h.fail(c, "update payment option failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequest(r))
}

func (h *RequestHandler) fail(c *gin.Context, msg string, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error(msg, zap.String("request_id", c.Param("id")), zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
