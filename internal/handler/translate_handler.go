package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"traductor/backend/internal/model"
	"traductor/backend/internal/service"
)

// PageTemplate is the template rendered for the form page.
const PageTemplate = "index.html"

const pageTitle = "Traductor Gen-AI"

type TranslateHandler struct {
	service service.TranslationService
}

type translateRequest struct {
	Text     string `json:"text" form:"text"`
	Language string `json:"language" form:"language"`
}

type translateResponse struct {
	Output string `json:"output"`
	Status string `json:"status"`
	RunID  string `json:"runId,omitempty"`
}

type languagesResponse struct {
	Languages []string `json:"languages"`
	Default   string   `json:"default"`
}

// PageData is the view model of the form page.
type PageData struct {
	Title     string
	Text      string
	Language  string
	Languages []string
	Output    string
	Status    string
}

func NewTranslateHandler(service service.TranslationService) *TranslateHandler {
	return &TranslateHandler{service: service}
}

func (h *TranslateHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/translate", h.Translate)
	g.GET("/languages", h.Languages)
}

func (h *TranslateHandler) RegisterPageRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.POST("/", h.Submit)
}

// Translate translates text into the target language.
// @Summary Translate text
// @Description Translate free text into one of the supported languages. Every outcome, including provider failures, is a 200 response whose status field tells them apart.
// @Tags translation
// @Accept json
// @Produce json
// @Param request body translateRequest true "Text and target language"
// @Success 200 {object} translateResponse
// @Failure 400 {object} errorResponse
// @Router /api/translate [post]
func (h *TranslateHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	result := h.service.Translate(c.Request().Context(), toTranslationRequest(req))
	return c.JSON(http.StatusOK, translateResponse{
		Output: result.Output,
		Status: string(result.Status),
		RunID:  result.RunID,
	})
}

// Languages lists the supported target languages.
// @Summary List languages
// @Description Get the supported target languages and the default selection
// @Tags translation
// @Produce json
// @Success 200 {object} languagesResponse
// @Router /api/languages [get]
func (h *TranslateHandler) Languages(c echo.Context) error {
	return c.JSON(http.StatusOK, languagesResponse{
		Languages: model.SupportedLanguages,
		Default:   model.DefaultLanguage,
	})
}

// Page renders the empty form.
func (h *TranslateHandler) Page(c echo.Context) error {
	return c.Render(http.StatusOK, PageTemplate, newPageData("", model.DefaultLanguage))
}

// Submit translates the posted form and renders it with the output.
func (h *TranslateHandler) Submit(c echo.Context) error {
	req := toTranslationRequest(translateRequest{
		Text:     c.FormValue("text"),
		Language: c.FormValue("language"),
	})

	result := h.service.Translate(c.Request().Context(), req)

	data := newPageData(req.Text, req.TargetLanguage)
	data.Output = result.Output
	data.Status = string(result.Status)
	return c.Render(http.StatusOK, PageTemplate, data)
}

// toTranslationRequest applies the default language to an empty selection.
func toTranslationRequest(req translateRequest) model.TranslationRequest {
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = model.DefaultLanguage
	}
	return model.TranslationRequest{Text: req.Text, TargetLanguage: language}
}

func newPageData(text, language string) PageData {
	return PageData{
		Title:     pageTitle,
		Text:      text,
		Language:  language,
		Languages: model.SupportedLanguages,
	}
}
