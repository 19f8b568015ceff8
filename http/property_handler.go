package http

import (
	"net/http"

	"go.uber.org/zap"

	"rental-analyzer/domain"
	"rental-analyzer/service"
)

type PropertyHandler struct {
	analysis  *service.AnalysisService
	narrative *service.NarrativeService
	financing *service.FinancingService
	logger    *zap.Logger
}

func NewPropertyHandler(
	analysis *service.AnalysisService,
	narrative *service.NarrativeService,
	financing *service.FinancingService,
	logger *zap.Logger,
) *PropertyHandler {
	return &PropertyHandler{
		analysis:  analysis,
		narrative: narrative,
		financing: financing,
		logger:    logger,
	}
}

// Defaults returns the baseline deal a client starts editing from.
func (h *PropertyHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, domain.DefaultPropertyInput())
}

func (h *PropertyHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input domain.PropertyInput
	if err := decodeValidated(r, propertySchema, &input); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.analysis.Analyze(input))
}

// Narrative returns the advisor commentary. ?format=html adds rendered HTML
// next to the markdown.
func (h *PropertyHandler) Narrative(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	withHTML := false
	switch format := r.URL.Query().Get("format"); format {
	case "", "markdown":
	case "html":
		withHTML = true
	default:
		writeError(w, http.StatusBadRequest, "unsupported format: "+format)
		return
	}

	var input domain.PropertyInput
	if err := decodeValidated(r, propertySchema, &input); err != nil {
		writeServiceError(w, err)
		return
	}

	resp, err := h.narrative.Narrate(r.Context(), input, withHTML)
	if err != nil {
		h.logger.Warn("narrative request failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PropertyHandler) FinancingScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req domain.FinancingRequest
	if err := decodeValidated(r, financingSchema, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := h.financing.CompareTerms(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
