package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Skufu/alzrisk/internal/features"
	"github.com/Skufu/alzrisk/internal/patient"
	"github.com/Skufu/alzrisk/internal/web"
)

type handler struct {
	predictor Predictor
	modelPath string
	logger    *slog.Logger
}

type fieldProblem struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type predictionResponse struct {
	Label             string             `json:"label"`
	HighRisk          bool               `json:"highRisk"`
	Class             int                `json:"class"`
	RawProbability    float64            `json:"rawProbability"`
	Confidence        float64            `json:"confidence"`
	ConfidencePercent string             `json:"confidencePercent"`
	Message           string             `json:"message"`
	Features          []features.Feature `json:"features"`
}

func (h *handler) form(c *gin.Context) {
	c.HTML(http.StatusOK, web.Layout, web.NewPage(patient.Defaults(), nil))
}

func (h *handler) submit(c *gin.Context) {
	in := patient.Defaults()
	if err := c.ShouldBind(&in); err != nil {
		if verrs, ok := validationErrors(err); ok {
			msgs := make([]string, 0, len(verrs))
			for _, p := range problems(verrs) {
				msgs = append(msgs, p.Field+": "+p.Message)
			}
			c.HTML(http.StatusUnprocessableEntity, web.Layout, web.ErrorPage(in, msgs...))
			return
		}
		h.logger.Warn("form.bind_failed", "request_id", c.GetString(requestIDKey), "error", err)
		c.HTML(bindStatus(err), web.Layout, web.ErrorPage(patient.Defaults(), "The form submission could not be read."))
		return
	}
	if h.predictor == nil {
		c.HTML(http.StatusServiceUnavailable, web.Layout, web.ErrorPage(in, "The model is not loaded."))
		return
	}

	res, err := h.predictor.Predict(in)
	if err != nil {
		h.logger.Error("prediction failed", "request_id", c.GetString(requestIDKey), "error", err)
		c.HTML(http.StatusInternalServerError, web.Layout, web.ErrorPage(in, "Prediction failed."))
		return
	}
	c.HTML(http.StatusOK, web.Layout, web.NewPage(in, &res))
}

func (h *handler) predict(c *gin.Context) {
	in := patient.Defaults()
	if err := c.ShouldBindJSON(&in); err != nil {
		if verrs, ok := validationErrors(err); ok {
			respondError(c, h.logger, http.StatusUnprocessableEntity, "validation_failed",
				"input outside the allowed domain", problems(verrs))
			return
		}
		status := bindStatus(err)
		if status == http.StatusRequestEntityTooLarge {
			respondError(c, h.logger, status, "payload_too_large", "request body too large", nil)
			return
		}
		respondError(c, h.logger, status, "invalid_payload", "invalid payload", nil)
		return
	}
	if h.predictor == nil {
		respondError(c, h.logger, http.StatusServiceUnavailable, "model_unavailable", "model not loaded", nil)
		return
	}

	res, err := h.predictor.Predict(in)
	if err != nil {
		h.logger.Error("prediction failed", "request_id", c.GetString(requestIDKey), "error", err)
		respondError(c, h.logger, http.StatusInternalServerError, "prediction_failed", "prediction failed", nil)
		return
	}

	c.JSON(http.StatusOK, predictionResponse{
		Label:             string(res.Label),
		HighRisk:          res.HighRisk(),
		Class:             res.Class,
		RawProbability:    res.RawProbability,
		Confidence:        res.Confidence,
		ConfidencePercent: res.Percent(),
		Message:           res.Message(),
		Features:          res.Features.Features(),
	})
}

func (h *handler) model(c *gin.Context) {
	if h.predictor == nil {
		respondError(c, h.logger, http.StatusServiceUnavailable, "model_unavailable", "model not loaded", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path":     h.modelPath,
		"features": h.predictor.FeatureNames(),
	})
}

func bindStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// validationErrors reports whether err came from the binding tags on
// patient.Input rather than from decoding.
func validationErrors(err error) (patient.ValidationErrors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	return patient.FromValidator(verrs), true
}

func problems(verrs patient.ValidationErrors) []fieldProblem {
	out := make([]fieldProblem, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldProblem{Field: fe.Field, Value: fe.Value, Message: fe.Err.Error()})
	}
	return out
}
