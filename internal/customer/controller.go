package customer

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"salesdesk/internal/customer/service"
	apperrors "salesdesk/internal/errors"
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
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		c.writeError(w, apperrors.NewValidationError("invalid email", apperrors.ValidationDetail{
			Field:   "email",
			Message: "email must be a valid address",
		}))
		return
	}

	customer, err := c.service.Create(r.Context(), service.CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toCustomerDTO(*customer))
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	customers, err := c.service.FindAll(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, customer := range customers {
		dtos = append(dtos, toCustomerDTO(customer))
	}

	c.writeJSON(w, http.StatusOK, dtos)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	customer, err := c.service.FindOne(r.Context(), id)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toCustomerDTO(*customer))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			c.writeError(w, apperrors.NewValidationError("invalid email", apperrors.ValidationDetail{
				Field:   "email",
				Message: "email must be a valid address",
			}))
			return
		}
	}

	customer, err := c.service.Update(r.Context(), id, service.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toCustomerDTO(*customer))
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	customer, err := c.service.Remove(r.Context(), id)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toCustomerDTO(*customer))
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

	c.logger.Error("customer request failed", zap.Error(err))
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
