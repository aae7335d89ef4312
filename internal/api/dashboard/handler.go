package dashboard

import (
	"errors"
	"net/http"
	"strings"

	"github.com/futig/scopeguard/internal/api/render"
	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/pkg/logger"
	"github.com/futig/scopeguard/internal/pkg/response"
	"github.com/futig/scopeguard/internal/pkg/validator"
	"github.com/futig/scopeguard/internal/session"
	"github.com/futig/scopeguard/internal/usecase/defense"
	"github.com/futig/scopeguard/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	exportBaseName  = "scope-defense"
	msgNoDraft      = "No draft to export."
	msgUnknownState = "Session unavailable. Please reload."
)

type Handler struct {
	chats         ChatUsecase
	defense       DefenseUsecase
	formatters    FormatterFactory
	renderer      PageRenderer
	maxUploadSize int64
}

func NewHandler(
	chats ChatUsecase,
	defense DefenseUsecase,
	formatters FormatterFactory,
	renderer PageRenderer,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		chats:         chats,
		defense:       defense,
		formatters:    formatters,
		renderer:      renderer,
		maxUploadSize: maxUploadSize,
	}
}

// NewChat handles POST /chats/new - Clear the active conversation
func (h *Handler) NewChat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "NewChat")
	r = r.WithContext(ctx)

	state, ok := session.StateFromContext(ctx)
	if !ok {
		h.renderer.Page(w, r, http.StatusInternalServerError, view.Error(msgUnknownState))
		return
	}

	h.chats.StartNew(ctx, state)
	h.renderer.Page(w, r, http.StatusOK)
}

// LoadChat handles POST /chats/{id}/load - Open a saved conversation.
// A chat that cannot be loaded leaves the screen as it was.
func (h *Handler) LoadChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")
	ctx := logger.WithChat(logger.WithAction(r.Context(), "LoadChat"), chatID)
	r = r.WithContext(ctx)

	state, ok := session.StateFromContext(ctx)
	if !ok {
		h.renderer.Page(w, r, http.StatusInternalServerError, view.Error(msgUnknownState))
		return
	}

	if err := h.chats.Load(ctx, state, chatID); err != nil {
		ctxzap.Debug(ctx, "chat not loaded", zap.Error(err))
	}

	h.renderer.Page(w, r, http.StatusOK)
}

// SubmitDefense handles POST /defense - Draft a reply to the client email
func (h *Handler) SubmitDefense(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitDefense")
	r = r.WithContext(ctx)

	state, ok := session.StateFromContext(ctx)
	if !ok {
		h.renderer.Page(w, r, http.StatusInternalServerError, view.Error(msgUnknownState))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		ctxzap.Warn(ctx, "failed to parse defense form", zap.Error(err))

		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		h.renderer.Page(w, r, status, view.Error(validator.MsgPDFUnreadable))
		return
	}

	in := defense.SubmitInput{
		Contract: r.FormValue("contract"),
		Email:    r.FormValue("email"),
		Tone:     r.FormValue("tone"),
	}
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["pdf"]; len(files) > 0 && files[0].Filename != "" {
			in.PDF = files[0]
		}
	}

	result, err := h.defense.Submit(ctx, state, in)

	var notices []view.Notice
	if result != nil && result.PDFAttached {
		notices = append(notices, view.Success(defense.MsgPDFAttached))
	}

	if err != nil {
		if vErr, ok := entity.IsValidation(err); ok {
			notice := view.Error(vErr.Message)
			if errors.Is(err, entity.ErrMissingField) {
				notice = view.Warning(vErr.Message)
			}
			h.renderer.Page(w, r, render.StatusFor(err), append(notices, notice)...)
			return
		}

		h.renderer.Page(w, r, http.StatusBadGateway, append(notices, view.Error(defense.MsgGenerationFailed))...)
		return
	}

	if result.SaveErr != nil {
		notices = append(notices, view.Warning(defense.MsgSaveFailed))
	}

	h.renderer.Page(w, r, http.StatusOK, notices...)
}

// ExportDraft handles GET /draft/export?format=markdown|pdf|docx - Download the current draft
func (h *Handler) ExportDraft(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportDraft")

	state, ok := session.StateFromContext(ctx)
	if !ok || !state.HasResponse() {
		ctxzap.Info(ctx, "export requested without draft")
		response.Error(w, render.StatusFor(entity.ErrNoDraft), msgNoDraft)
		return
	}

	format := entity.ResultFormat(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = entity.FormatMarkdown
	}
	if !format.IsValid() {
		response.Error(w, http.StatusBadRequest, "format must be one of: markdown, pdf, docx")
		return
	}

	f, err := h.formatters.Create(format)
	if err != nil {
		ctxzap.Error(ctx, "failed to create formatter", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := f.Format(state.LastResponse)
	if err != nil {
		ctxzap.Error(ctx, "failed to format draft", zap.String("format", string(format)), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to export draft")
		return
	}

	ctxzap.Info(ctx, "draft exported",
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)

	response.Attachment(w, exportBaseName+f.FileExtension(), f.ContentType(), data)
}
