package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/api"
	"github.com/linesmerrill/dl-generator-api/config"
	"github.com/linesmerrill/dl-generator-api/export"
	"github.com/linesmerrill/dl-generator-api/form"
	"github.com/linesmerrill/dl-generator-api/gateway"
	"github.com/linesmerrill/dl-generator-api/metrics"
	"github.com/linesmerrill/dl-generator-api/models"
	"github.com/linesmerrill/dl-generator-api/sessions"
)

// Request exposes the in-progress license requests
type Request struct {
	Sessions       *sessions.Store
	Gateway        gateway.Gateway
	Exporter       *export.Exporter
	Metrics        *metrics.Metrics
	GatewayTimeout time.Duration
}

// PhotoView describes the attached photo without its bytes
type PhotoView struct {
	Attached bool   `json:"attached"`
	MIMEType string `json:"mimeType,omitempty"`
	Size     int    `json:"size,omitempty"`
}

// RequestView is the JSON representation of a request session
type RequestView struct {
	ID      string                `json:"id"`
	State   form.State            `json:"state"`
	Request models.LicenseRequest `json:"request"`
	Photo   PhotoView             `json:"photo"`
}

// SubmitResponse is returned by a successful submission
type SubmitResponse struct {
	models.ArtifactBundle
	Artifacts []export.Artifact `json:"artifacts,omitempty"`
}

// ModeRequest is the body of ModeHandler
type ModeRequest struct {
	International bool `json:"international"`
}

// CodeRequest is the body of the jurisdiction, country and sub-jurisdiction
// handlers
type CodeRequest struct {
	Code string `json:"code"`
}

// ValueRequest is the body of SpecialFieldHandler
type ValueRequest struct {
	Value string `json:"value"`
}

func view(id string, m *form.Model) RequestView {
	v := RequestView{ID: id, State: m.State(), Request: m.Snapshot()}
	v.Request.PhotoBase64 = ""
	if p, ok := m.Photo(); ok {
		v.Photo = PhotoView{Attached: true, MIMEType: p.MIMEType, Size: len(p.Data)}
	}
	return v
}

// session looks up the session named in the route, writing a 404 when it is
// gone
func (rq Request) session(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	id := mux.Vars(r)["request_id"]
	zap.S().Debugf("request_id: %v", id)

	sess, ok := rq.Sessions.Get(id)
	if !ok {
		config.ErrorStatus("failed to get request by ID", http.StatusNotFound, w, fmt.Errorf("request %s not found", id))
		return nil, false
	}
	return sess, true
}

// update applies fn to the session's model and writes the resulting view
func (rq Request) update(w http.ResponseWriter, r *http.Request, fn func(m *form.Model) error) {
	sess, ok := rq.session(w, r)
	if !ok {
		return
	}
	var v RequestView
	err := sess.Update(func(m *form.Model) error {
		if err := fn(m); err != nil {
			return err
		}
		v = view(sess.ID, m)
		return nil
	})
	if err != nil {
		config.ErrorStatus("failed to update request", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// statusFor maps a model error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, form.ErrPhotoTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, form.ErrPhotoWrongType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, form.ErrNotDomestic),
		errors.Is(err, form.ErrNotInternational),
		errors.Is(err, form.ErrNotRegionalBloc),
		errors.Is(err, form.ErrNoSubJurisdictions),
		errors.Is(err, form.ErrUndeclaredSpecialField):
		return http.StatusConflict
	case errors.Is(err, form.ErrUnknownField),
		errors.Is(err, form.ErrUnknownJurisdiction),
		errors.Is(err, form.ErrUnknownCountry),
		errors.Is(err, form.ErrUnknownSubJurisdiction),
		errors.Is(err, form.ErrUnknownCategory),
		errors.Is(err, form.ErrUnknownMask):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// CreateRequestHandler starts a new request with the default values
func (rq Request) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	sess := rq.Sessions.Create()
	rq.Metrics.ActiveSessions.Set(float64(rq.Sessions.Len()))

	var v RequestView
	sess.View(func(m *form.Model) { v = view(sess.ID, m) })
	zap.S().Infow("request created", "id", sess.ID)
	writeJSON(w, http.StatusCreated, v)
}

// RequestHandler returns a request
func (rq Request) RequestHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := rq.session(w, r)
	if !ok {
		return
	}
	var v RequestView
	sess.View(func(m *form.Model) { v = view(sess.ID, m) })
	writeJSON(w, http.StatusOK, v)
}

// DeleteRequestHandler discards a request
func (rq Request) DeleteRequestHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["request_id"]
	if !rq.Sessions.Delete(id) {
		config.ErrorStatus("failed to delete request by ID", http.StatusNotFound, w, fmt.Errorf("request %s not found", id))
		return
	}
	rq.Metrics.ActiveSessions.Set(float64(rq.Sessions.Len()))
	writeJSON(w, http.StatusOK, map[string]string{"message": "request deleted"})
}

// UpdateRequestFieldsHandler sets free entry fields and flags. String values
// go to text fields, booleans to flags. Nothing is applied unless every key is
// valid.
func (rq Request) UpdateRequestFieldsHandler(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decodeBody(w, r, &body) {
		return
	}

	keys := make([]string, 0, len(body))
	for k, v := range body {
		f := models.FieldID(k)
		switch v.(type) {
		case string:
			if !form.IsTextField(f) {
				config.ErrorStatus("failed to update request", http.StatusUnprocessableEntity, w, fmt.Errorf("%w: %s", form.ErrUnknownField, k))
				return
			}
		case bool:
			if !form.IsFlagField(f) {
				config.ErrorStatus("failed to update request", http.StatusUnprocessableEntity, w, fmt.Errorf("%w: %s", form.ErrUnknownField, k))
				return
			}
		default:
			config.ErrorStatus("failed to update request", http.StatusBadRequest, w, fmt.Errorf("field %s must be a string or a boolean", k))
			return
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rq.update(w, r, func(m *form.Model) error {
		for _, k := range keys {
			var err error
			switch v := body[k].(type) {
			case string:
				err = m.SetField(models.FieldID(k), v)
			case bool:
				err = m.SetFlag(models.FieldID(k), v)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ModeHandler switches between domestic and international entry
func (rq Request) ModeHandler(w http.ResponseWriter, r *http.Request) {
	var body ModeRequest
	if !decodeBody(w, r, &body) {
		return
	}
	rq.update(w, r, func(m *form.Model) error {
		m.SetJurisdictionMode(body.International)
		return nil
	})
}

// JurisdictionHandler selects the US jurisdiction of a domestic request
func (rq Request) JurisdictionHandler(w http.ResponseWriter, r *http.Request) {
	var body CodeRequest
	if !decodeBody(w, r, &body) {
		return
	}
	rq.update(w, r, func(m *form.Model) error { return m.SelectJurisdiction(body.Code) })
}

// CountryHandler selects the country of an international request
func (rq Request) CountryHandler(w http.ResponseWriter, r *http.Request) {
	var body CodeRequest
	if !decodeBody(w, r, &body) {
		return
	}
	rq.update(w, r, func(m *form.Model) error { return m.SelectCountry(body.Code) })
}

// SubJurisdictionHandler overrides the sub-jurisdiction of the selected country
func (rq Request) SubJurisdictionHandler(w http.ResponseWriter, r *http.Request) {
	var body CodeRequest
	if !decodeBody(w, r, &body) {
		return
	}
	rq.update(w, r, func(m *form.Model) error { return m.SelectSubJurisdiction(body.Code) })
}

// ToggleCategoryHandler adds or removes a license category
func (rq Request) ToggleCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	rq.update(w, r, func(m *form.Model) error { return m.ToggleCategory(category) })
}

// SpecialFieldHandler sets a country specific field, applying its input mask
func (rq Request) SpecialFieldHandler(w http.ResponseWriter, r *http.Request) {
	field := models.FieldID(mux.Vars(r)["field_id"])
	var body ValueRequest
	if !decodeBody(w, r, &body) {
		return
	}
	rq.update(w, r, func(m *form.Model) error { return m.SetSpecialField(field, body.Value) })
}

// AttachPhotoHandler stores the request body as the photo. The body's
// Content-Type must be an image type.
func (rq Request) AttachPhotoHandler(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > form.MaxPhotoBytes {
		config.ErrorStatus("failed to attach photo", http.StatusRequestEntityTooLarge, w, form.ErrPhotoTooLarge)
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, form.MaxPhotoBytes+1))
	if err != nil {
		config.ErrorStatus("failed to read photo", http.StatusBadRequest, w, err)
		return
	}
	mimeType := r.Header.Get("Content-Type")
	rq.update(w, r, func(m *form.Model) error {
		return m.AttachPhoto(data, mimeType, int64(len(data)))
	})
}

// ClearPhotoHandler removes the photo
func (rq Request) ClearPhotoHandler(w http.ResponseWriter, r *http.Request) {
	rq.update(w, r, func(m *form.Model) error {
		m.ClearPhoto()
		return nil
	})
}

// ValidationHandler returns the validation result of a request without
// submitting it
func (rq Request) ValidationHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := rq.session(w, r)
	if !ok {
		return
	}
	var res form.ValidationResult
	sess.View(func(m *form.Model) { res = m.Validate() })
	writeJSON(w, http.StatusOK, res)
}

// ResetHandler restores the default values
func (rq Request) ResetHandler(w http.ResponseWriter, r *http.Request) {
	rq.update(w, r, func(m *form.Model) error {
		m.Reset()
		return nil
	})
}

// SubmitHandler validates a request and sends its snapshot to the rendering
// service. Invalid requests get a 422 with the failing fields. Only one
// submission per request may be in flight. With ?export=true the rendered
// images are also exported.
func (rq Request) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := rq.session(w, r)
	if !ok {
		return
	}
	release, err := sess.BeginSubmit()
	if err != nil {
		config.ErrorStatus("failed to submit request", http.StatusConflict, w, err)
		return
	}
	defer release()

	var res form.ValidationResult
	var snapshot models.LicenseRequest
	sess.View(func(m *form.Model) {
		res = m.Validate()
		if res.Valid {
			snapshot = m.Snapshot()
		}
	})
	if !res.Valid {
		rq.Metrics.IncrementSubmissions(metrics.OutcomeInvalid)
		for f, reason := range res.Errors {
			rq.Metrics.IncrementValidationFailure(string(f), string(reason))
		}
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	ctx, cancel := api.WithGatewayTimeout(r.Context(), rq.GatewayTimeout)
	defer cancel()

	bundle, err := rq.Gateway.Submit(ctx, snapshot)
	var rejected *gateway.RejectedError
	switch {
	case errors.Is(err, gateway.ErrUnavailable):
		rq.Metrics.IncrementSubmissions(metrics.OutcomeUnavailable)
		config.ErrorStatus("rendering service unavailable", http.StatusServiceUnavailable, w, err)
		return
	case errors.As(err, &rejected):
		rq.Metrics.IncrementSubmissions(metrics.OutcomeRejected)
		config.ErrorStatus("rendering service rejected request", http.StatusBadGateway, w, err)
		return
	case err != nil:
		rq.Metrics.IncrementSubmissions(metrics.OutcomeError)
		config.ErrorStatus("failed to submit request", http.StatusBadGateway, w, err)
		return
	}
	rq.Metrics.IncrementSubmissions(metrics.OutcomeSuccess)
	zap.S().Infow("request rendered",
		"id", sess.ID,
		"jurisdiction", bundle.LicenseData.Jurisdiction(),
		"licenseNumber", bundle.LicenseData.LicenseNumber)

	resp := SubmitResponse{ArtifactBundle: bundle}
	if r.URL.Query().Get("export") == "true" {
		artifacts, err := rq.Exporter.Export(r.Context(), bundle)
		if err != nil {
			config.ErrorStatus("failed to export artifacts", http.StatusInternalServerError, w, err)
			return
		}
		resp.Artifacts = artifacts
	}
	writeJSON(w, http.StatusOK, resp)
}
