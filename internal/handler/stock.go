package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

type timelineService interface {
	Timeline(ctx context.Context, productID uuid.UUID, start, end *time.Time) ([]domain.StockTimelinePoint, error)
}

type StockHandler struct {
	stock timelineService
}

func NewStockHandler(stock timelineService) *StockHandler {
	return &StockHandler{stock: stock}
}

type timelinePointDTO struct {
	Date     time.Time       `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
}

func (h *StockHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	start, fieldErr := parseDateParam(r, "start")
	if fieldErr != nil {
		RespondValidationError(w, []FieldError{*fieldErr})
		return
	}
	end, fieldErr := parseDateParam(r, "end")
	if fieldErr != nil {
		RespondValidationError(w, []FieldError{*fieldErr})
		return
	}

	points, err := h.stock.Timeline(r.Context(), productID, start, end)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]timelinePointDTO, 0, len(points))
	for _, p := range points {
		dtos = append(dtos, timelinePointDTO{Date: p.Date, Quantity: p.Quantity})
	}

	RespondSuccess(w, http.StatusOK, map[string]any{"timeline": dtos})
}

func parseDateParam(r *http.Request, name string) (*time.Time, *FieldError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Accept bare dates as well; the UI's date picker sends both forms.
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, &FieldError{Field: name, Message: "must be an ISO-8601 timestamp or date"}
		}
	}
	return &t, nil
}
