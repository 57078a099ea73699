package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/utils"
	"github.com/MKhiriev/go-page-builder/models"
	"github.com/go-resty/resty/v2"
)

type httpBuilderAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPBuilderAdapter returns the REST implementation of [BuilderAdapter].
// A bare "host:port" address gets the http scheme.
func NewHTTPBuilderAdapter(cfg config.Adapter, logger *logger.Logger) (BuilderAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpBuilderAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout, utils.NewUUIDGenerator()),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func entityPath(id int64, suffix string) string {
	return "/api/entities/" + strconv.FormatInt(id, 10) + suffix
}

func typePath(entityType string) string {
	return "/api/types/" + url.PathEscape(entityType) + "/builder"
}

// do sends the request and maps transport and status failures.
func (h *httpBuilderAdapter) do(ctx context.Context, funcName, method, path string, body, result any) (*resty.Response, error) {
	req := h.client.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Err(err).Str("func", funcName).Str("path", path).Msg("request failed")
		return nil, fmt.Errorf("%s request: %w", funcName, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("func", funcName).Int("status", resp.StatusCode()).Msg("server rejected request")
		return resp, err
	}

	return resp, nil
}

func (h *httpBuilderAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var version models.VersionResponse
	_, err := h.do(ctx, "Version", http.MethodGet, "/api/version", nil, &version)
	return version, err
}

func (h *httpBuilderAdapter) CreateEntity(ctx context.Context, request models.CreateEntityRequest) (models.Entity, error) {
	var entity models.Entity
	_, err := h.do(ctx, "CreateEntity", http.MethodPost, "/api/entities", request, &entity)
	return entity, err
}

func (h *httpBuilderAdapter) GetEntity(ctx context.Context, id int64) (models.Entity, error) {
	var entity models.Entity
	_, err := h.do(ctx, "GetEntity", http.MethodGet, entityPath(id, ""), nil, &entity)
	return entity, err
}

func (h *httpBuilderAdapter) UpdateBody(ctx context.Context, id int64, body string) error {
	_, err := h.do(ctx, "UpdateBody", http.MethodPut, entityPath(id, "/body"), models.BodyUpdateRequest{Body: body}, nil)
	return err
}

func (h *httpBuilderAdapter) IsBuilder(ctx context.Context, id int64) (bool, error) {
	var status models.BuilderStatusResponse
	_, err := h.do(ctx, "IsBuilder", http.MethodGet, entityPath(id, "/builder"), nil, &status)
	return status.Builder, err
}

func (h *httpBuilderAdapter) SaveBuilderOption(ctx context.Context, id int64, option models.BuilderOption) error {
	_, err := h.do(ctx, "SaveBuilderOption", http.MethodPut, entityPath(id, "/builder"), option, nil)
	return err
}

func (h *httpBuilderAdapter) NotifyOptionUpdated(ctx context.Context, id int64, request models.OptionUpdatedRequest) (models.SyncResponse, error) {
	var response models.SyncResponse
	_, err := h.do(ctx, "NotifyOptionUpdated", http.MethodPost, entityPath(id, "/events/option-updated"), request, &response)
	return response, err
}

func (h *httpBuilderAdapter) Render(ctx context.Context, id int64, content string) (string, error) {
	var response models.RenderResponse
	_, err := h.do(ctx, "Render", http.MethodPost, entityPath(id, "/render"), models.RenderRequest{Content: content}, &response)
	return response.HTML, err
}

func (h *httpBuilderAdapter) Import(ctx context.Context, request models.ImportRequest) (bool, error) {
	var response models.ImportResponse
	_, err := h.do(ctx, "Import", http.MethodPost, entityPath(request.EntityID, "/import"), request, &response)
	return response.Applied, err
}

func (h *httpBuilderAdapter) DeclareSupport(ctx context.Context, entityType string) error {
	_, err := h.do(ctx, "DeclareSupport", http.MethodPut, typePath(entityType), nil, nil)
	return err
}

func (h *httpBuilderAdapter) OptionsDescriptor(ctx context.Context, entityType string) (*models.OptionsDescriptor, error) {
	var descriptor models.OptionsDescriptor
	_, err := h.do(ctx, "OptionsDescriptor", http.MethodGet, typePath(entityType), nil, &descriptor)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &descriptor, nil
}

func (h *httpBuilderAdapter) DecodeAtts(ctx context.Context, atts map[string]string) (map[string]any, error) {
	decoded := make(map[string]any)
	_, err := h.do(ctx, "DecodeAtts", http.MethodPost, "/api/shortcodes/decode", atts, &decoded)
	return decoded, err
}

func (h *httpBuilderAdapter) Resync(ctx context.Context) (models.ResyncResponse, error) {
	var response models.ResyncResponse
	_, err := h.do(ctx, "Resync", http.MethodPost, "/api/resync", nil, &response)
	return response, err
}
