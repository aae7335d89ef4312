package defense

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/pkg/validator"
	"github.com/futig/scopeguard/internal/session"
	"github.com/futig/scopeguard/internal/usecase/chat"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	MsgPDFAttached      = "PDF Attached"
	MsgGenerationFailed = "Failed to generate response. Please try again."
	MsgSaveFailed       = "Draft generated but could not be saved."
)

// SubmitInput is one submission of the defense form
type SubmitInput struct {
	Contract string
	Email    string
	Tone     string
	PDF      *multipart.FileHeader
}

// SubmitResult tells the caller what happened besides the returned error
type SubmitResult struct {
	PDFAttached bool
	Generated   bool
	// SaveErr is set when the draft was generated but not persisted
	SaveErr error
}

// DefenseUsecase turns a contract and a client email into a drafted reply
type DefenseUsecase struct {
	completion CompletionConnector
	extractor  DocumentExtractor
	chats      ChatSaver
	validator  *validator.Validator
	logger     *zap.Logger
}

// NewUsecase creates a new defense use case
func NewUsecase(
	completion CompletionConnector,
	extractor DocumentExtractor,
	chats ChatSaver,
	validator *validator.Validator,
	logger *zap.Logger,
) *DefenseUsecase {
	return &DefenseUsecase{
		completion: completion,
		extractor:  extractor,
		chats:      chats,
		validator:  validator,
		logger:     logger,
	}
}

// Submit runs one defense request against the session state. The returned
// result is never nil. A *entity.ValidationError means nothing was sent to
// the completion service.
func (uc *DefenseUsecase) Submit(ctx context.Context, state *session.State, in SubmitInput) (*SubmitResult, error) {
	result := &SubmitResult{}

	tone := entity.ParseTone(in.Tone)
	state.EmailText = in.Email
	state.Tone = tone

	contract := in.Contract
	if in.PDF != nil {
		text, err := uc.extractPDF(ctx, in.PDF)
		if err != nil {
			return result, err
		}
		contract = text
		result.PDFAttached = true
	}

	state.ContractText = contract

	if err := uc.validator.ValidateDefenseInput(contract, in.Email); err != nil {
		ctxzap.Info(ctx, "defense input incomplete",
			zap.Bool("has_contract", contract != ""),
			zap.Bool("has_email", in.Email != ""),
		)
		return result, err
	}

	ctxzap.Info(ctx, "drafting defense",
		zap.String("tone", string(tone)),
		zap.Int("contract_length", len(contract)),
		zap.Int("email_length", len(in.Email)),
	)

	response, err := uc.completion.Complete(ctx, buildCompletionRequest(contract, in.Email, tone))
	if err != nil {
		ctxzap.Error(ctx, "completion failed", zap.Error(err))
		return result, fmt.Errorf("generate draft: %w", err)
	}

	state.LastResponse = response
	result.Generated = true

	title := chat.DefenseTitle(in.Email)
	if err := uc.chats.Save(ctx, state, title, contract, in.Email, response); err != nil {
		ctxzap.Error(ctx, "failed to save chat history", zap.Error(err))
		result.SaveErr = err
		return result, nil
	}

	ctxzap.Info(ctx, "defense drafted and saved",
		zap.String("chat_id", state.ActiveChatID),
		zap.Int("response_length", len(response)),
	)

	return result, nil
}

func (uc *DefenseUsecase) extractPDF(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if err := uc.validator.ValidatePDF(fh); err != nil {
		ctxzap.Warn(ctx, "rejected contract upload", zap.String("filename", fh.Filename), zap.Error(err))
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", entity.NewValidationError(validator.MsgPDFUnreadable, fmt.Errorf("%w: open %s: %v", entity.ErrInvalidDocument, fh.Filename, err))
	}
	defer src.Close()

	text, err := uc.extractor.Extract(src)
	if err != nil {
		ctxzap.Warn(ctx, "failed to extract contract PDF", zap.String("filename", fh.Filename), zap.Error(err))
		return "", entity.NewValidationError(validator.MsgPDFUnreadable, err)
	}

	ctxzap.Debug(ctx, "contract PDF extracted",
		zap.String("filename", fh.Filename),
		zap.Int64("size", fh.Size),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}
