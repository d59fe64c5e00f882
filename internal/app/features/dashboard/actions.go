package dashboard

import (
	"net/http"

	"github.com/dalemusser/opsdash/internal/app/system/dashstate"
	"github.com/dalemusser/opsdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/opsdash/internal/app/system/inputval"
	"github.com/dalemusser/opsdash/internal/domain/models"
	"go.uber.org/zap"
)

type statusInput struct {
	Status string `json:"status" validate:"required,max=32,jobstatus" label:"Status"`
}

type quantityInput struct {
	Quantity inputval.Number `json:"quantity"`
}

type salesInput struct {
	Value    inputval.Number `json:"value"`
	Category string          `json:"category" validate:"max=64" label:"Category"`
}

// ServeStatus handles POST /dashboard/{role}/jobs/{id}/status.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, view, ok := h.resolve(w, r)
	if !ok {
		return
	}
	var in statusInput
	if !decodeBody(w, r, &in) {
		return
	}
	in.Status = htmlsanitize.Text(in.Status)
	jobID := pathText(r, "id")

	if res := inputval.Validate(in); res.HasErrors() {
		resp := newMutation(view.Snapshot(), dashstate.Outcome{Reason: dashstate.ReasonInvalidStatus})
		resp.Message = res.All()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	state, out := view.Dispatch(dashstate.SetStatus(jobID, models.JobStatus(in.Status)))
	if out.Completed {
		h.Log.Debug("job completed",
			zap.String("role", string(state.Role)),
			zap.String("job_id", jobID),
			zap.Int("open_jobs", state.Metrics.OpenJobs))
	}
	h.Audit.JobStatusChanged(r.Context(), r, sessionID, jobID, in.Status, state, out)
	writeJSON(w, http.StatusOK, newMutation(state, out))
}

// ServeQuantity handles POST /dashboard/{role}/inventory/{name}/quantity.
// Non-numeric quantities count as 0.
func (h *Handler) ServeQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, view, ok := h.resolve(w, r)
	if !ok {
		return
	}
	var in quantityInput
	if !decodeBody(w, r, &in) {
		return
	}
	name := pathText(r, "name")
	qty := dashstate.QuantityOf(in.Quantity.Decimal)

	state, out := view.Dispatch(dashstate.SetQuantity(name, qty))
	h.Audit.InventoryQuantityChanged(r.Context(), r, sessionID, name, qty, state, out)
	writeJSON(w, http.StatusOK, newMutation(state, out))
}

// ServeSales handles POST /dashboard/{role}/sales. A blank category means the
// currently selected one.
func (h *Handler) ServeSales(w http.ResponseWriter, r *http.Request) {
	sessionID, view, ok := h.resolve(w, r)
	if !ok {
		return
	}
	var in salesInput
	if !decodeBody(w, r, &in) {
		return
	}
	in.Category = htmlsanitize.Text(in.Category)

	if res := inputval.Validate(in); res.HasErrors() {
		resp := newMutation(view.Snapshot(), dashstate.Outcome{Reason: dashstate.ReasonUnknownCategory})
		resp.Message = res.All()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	state, out := view.Dispatch(dashstate.SetSales(in.Category, in.Value.Decimal))
	category := in.Category
	if category == "" {
		category = state.SelectedCategory
	}
	h.Audit.SalesFigureChanged(r.Context(), r, sessionID, category, in.Value.String(), state, out)
	writeJSON(w, http.StatusOK, newMutation(state, out))
}

// ServeReset handles POST /dashboard/{role}/reset.
func (h *Handler) ServeReset(w http.ResponseWriter, r *http.Request) {
	sessionID, view, ok := h.resolve(w, r)
	if !ok {
		return
	}
	state := view.Reset()
	h.Audit.ViewReset(r.Context(), r, sessionID, state)
	writeJSON(w, http.StatusOK, newMutation(state, dashstate.Outcome{Applied: true}))
}
