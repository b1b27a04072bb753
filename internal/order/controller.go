package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	apperrors "salesdesk/internal/errors"
	"salesdesk/internal/order/service"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(svc Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: svc,
		logger:  logger,
	}
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if req.Status != "" && !domain.IsValidOrderStatus(req.Status) {
		c.writeError(w, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, confirmed, shipped, delivered, cancelled",
		}))
		return
	}

	view, err := c.service.Create(r.Context(), service.CreateInput{
		CustomerID:      req.CustomerID,
		OrderDate:       req.OrderDate,
		Description:     req.Description,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		Status:          req.Status,
		Items:           toItemInputs(req.Items),
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toOrderDTO(*view))
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := c.service.FindAll(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}

	dtos := make([]OrderDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, toOrderDTO(v))
	}

	c.writeJSON(w, http.StatusOK, dtos)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := c.service.FindOne(r.Context(), id)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderDTO(*view))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if req.Status != nil && !domain.IsValidOrderStatus(*req.Status) {
		c.writeError(w, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, confirmed, shipped, delivered, cancelled",
		}))
		return
	}

	view, err := c.service.Update(r.Context(), id, service.UpdateInput{
		OrderDate:       req.OrderDate,
		Description:     req.Description,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		Status:          req.Status,
		Items:           toItemInputs(req.Items),
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderDTO(*view))
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.service.Remove(r.Context(), id); err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func (c *Controller) writeError(w http.ResponseWriter, err error) {
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, errorResponse{Error: "NOT_FOUND", Message: nfe.Message})
		return
	}
	if aee, ok := apperrors.IsAlreadyExistsError(err); ok {
		c.writeJSON(w, http.StatusConflict, errorResponse{Error: "ALREADY_EXISTS", Message: aee.Message})
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "VALIDATION_ERROR", Message: ve.Message, Details: ve.Details})
		return
	}

	c.logger.Error("order request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
