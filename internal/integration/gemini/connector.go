package gemini

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/futig/scopeguard/internal/config"
	"github.com/futig/scopeguard/internal/entity"
	"github.com/futig/scopeguard/internal/integration/common"
	pkgRetry "github.com/futig/scopeguard/internal/pkg/retry"
	pkghttp "github.com/futig/scopeguard/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	apiKeyHeader       = "x-goog-api-key"
	listModelsEndpoint = "/v1beta/models"
	generateMethod     = "generateContent"
	modelCacheKey      = "generate_model"
	listPageSize       = "1000"
)

type Connector struct {
	config    config.GeminiConfig
	connector *pkghttp.Connector
	models    *cache.Cache
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GeminiConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(
			strings.TrimRight(cfg.BaseURL, "/"),
			cfg.HTTPClientConfig,
			logger,
			pkghttp.WithStaticHeader(apiKeyHeader, cfg.APIKey),
		),
		config: cfg,
		models: cache.New(cfg.ModelCacheTTL, cfg.ModelCacheTTL),
		logger: logger,
	}
}

// Complete sends the context turn, its acknowledgement and the instruction as
// one conversation and returns the generated text.
func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	model := c.ResolveModel(ctx)

	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.String("model", model)))
	ctxzap.Info(ctx, "generating draft via completion service")

	body := entity.GeminiGenerateRequest{
		Contents: []entity.GeminiContent{
			{Role: entity.LLMRoleUser, Parts: []entity.GeminiPart{{Text: req.SystemContext}}},
			{Role: entity.LLMRoleModel, Parts: []entity.GeminiPart{{Text: req.Acknowledge}}},
			{Role: entity.LLMRoleUser, Parts: []entity.GeminiPart{{Text: req.Instruction}}},
		},
	}

	var resp entity.GeminiGenerateResponse
	endpoint := fmt.Sprintf("/v1beta/%s:%s", model, generateMethod)
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := candidateText(&resp)
	if text == "" {
		return "", entity.ErrEmptyCompletion
	}

	ctxzap.Info(ctx, "draft generated successfully", zap.Int("result_length", len(text)))

	return text, nil
}

// ResolveModel returns a model able to generate text. Discovery results are
// cached; when discovery fails or finds nothing the configured default is used.
func (c *Connector) ResolveModel(ctx context.Context) string {
	if v, ok := c.models.Get(modelCacheKey); ok {
		return v.(string)
	}

	model, err := c.discoverModel(ctx)
	if err != nil {
		ctxzap.Warn(ctx, "model discovery failed, using default model",
			zap.String("default_model", c.config.DefaultModel),
			zap.Error(err),
		)
		return c.config.DefaultModel
	}

	c.models.SetDefault(modelCacheKey, model)
	ctxzap.Info(ctx, "text generation model discovered", zap.String("model", model))

	return model
}

func (c *Connector) discoverModel(ctx context.Context) (string, error) {
	pageToken := ""

	for {
		var page entity.GeminiListModelsResponse
		opts := []pkghttp.RequestOpt{pkghttp.WithQuery("pageSize", listPageSize)}
		if pageToken != "" {
			opts = append(opts, pkghttp.WithQuery("pageToken", pageToken))
		}

		err := pkgRetry.Do(ctx, c.config.Retry, pkghttp.IsTransient, func() error {
			page = entity.GeminiListModelsResponse{}
			return c.connector.DoRequest(ctx, http.MethodGet, listModelsEndpoint, nil, &page, opts...)
		})
		if err != nil {
			return "", fmt.Errorf("list models: %w", err)
		}

		if model, ok := pickModel(page.Models); ok {
			return model, nil
		}

		if page.NextPageToken == "" {
			return "", entity.ErrNoModel
		}
		pageToken = page.NextPageToken
	}
}

func pickModel(models []entity.GeminiModel) (string, bool) {
	for _, m := range models {
		if strings.Contains(m.Name, "gemini") && slices.Contains(m.SupportedGenerationMethods, generateMethod) {
			return m.Name, true
		}
	}
	return "", false
}

func candidateText(resp *entity.GeminiGenerateResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}
