package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalogmart/internal/common"
	"catalogmart/internal/importer"
	"catalogmart/internal/services"
	"catalogmart/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 20MB covers the spreadsheet sizes the importer is built for.
const maxImportPayload = 20 * 1024 * 1024

// ImportHandlers handles catalog import uploads and progress queries
type ImportHandlers struct {
	importer       *importer.Importer
	broker         *importer.ProgressBroker
	stagingService services.StagingService
	stagingBucket  string
	log            *zap.Logger
}

// NewImportHandlers creates a new import handlers instance
func NewImportHandlers(imp *importer.Importer, broker *importer.ProgressBroker, stagingService services.StagingService, stagingBucket string) *ImportHandlers {
	return &ImportHandlers{
		importer:       imp,
		broker:         broker,
		stagingService: stagingService,
		stagingBucket:  stagingBucket,
		log:            logger.Get(),
	}
}

func (h *ImportHandlers) readUpload(c echo.Context) ([]byte, string, importer.FieldMapping, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", nil, echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if file.Size > maxImportPayload {
		return nil, "", nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("file exceeds %d byte limit", maxImportPayload))
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to open upload")
	}
	defer src.Close()

	payload, err := io.ReadAll(src)
	if err != nil {
		return nil, "", nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to read upload")
	}

	mappingRaw := c.FormValue("mapping")
	if mappingRaw == "" {
		return nil, "", nil, echo.NewHTTPError(http.StatusBadRequest, "mapping is required")
	}
	var mapping importer.FieldMapping
	if err := json.Unmarshal([]byte(mappingRaw), &mapping); err != nil {
		return nil, "", nil, echo.NewHTTPError(http.StatusBadRequest, "mapping must be a JSON object of field to column header")
	}

	return payload, file.Filename, mapping, nil
}

// RunImport handles POST /imports. The whole pipeline runs inside the
// request; the summary comes back in the response body.
func (h *ImportHandlers) RunImport(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	payload, filename, mapping, err := h.readUpload(c)
	if err != nil {
		return err
	}

	summary, err := h.importer.Run(ctx, tenantID, payload, filename, mapping, "")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, summary)
}

// RunImportAsync handles POST /imports/async. The upload is staged to object
// storage, a session id is handed back immediately, and the pipeline runs in
// the background publishing progress under that session.
func (h *ImportHandlers) RunImportAsync(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	payload, filename, mapping, err := h.readUpload(c)
	if err != nil {
		return err
	}

	sessionID := uuid.New().String()

	if err := h.stagingService.StagePayload(ctx, h.stagingBucket, sessionID, filename, payload); err != nil {
		h.log.Error("failed to stage import payload",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return common.SendServerError(c, "failed to stage upload")
	}

	// The request context dies with the response; the background run gets
	// its own context carrying only the tenant.
	go func() {
		bgCtx := common.WithTenant(context.Background(), tenantID)

		staged, err := h.stagingService.FetchPayload(bgCtx, h.stagingBucket, sessionID)
		if err != nil {
			h.log.Error("failed to fetch staged payload",
				zap.String("session_id", sessionID),
				zap.Error(err))
			staged = payload
		}

		if _, err := h.importer.Run(bgCtx, tenantID, staged, filename, mapping, sessionID); err != nil {
			h.log.Error("async import failed",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}

		if err := h.stagingService.RemovePayload(bgCtx, h.stagingBucket, sessionID); err != nil {
			h.log.Warn("failed to remove staged payload",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
	}()

	return c.JSON(http.StatusAccepted, map[string]string{
		"session_id": sessionID,
		"message":    "Import started",
	})
}

// GetImportProgress handles GET /imports/:sessionId/progress. By default it
// returns the latest snapshot; with ?stream=true it keeps the connection open
// and pushes every update as a server-sent event until the import finishes.
func (h *ImportHandlers) GetImportProgress(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.Param("sessionId")
	if _, err := uuid.Parse(sessionID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid session id")
	}

	updates, cancel, err := h.broker.Subscribe(ctx, sessionID)
	if err != nil {
		return common.SendNotFoundError(c, "Import session")
	}
	defer cancel()

	if c.QueryParam("stream") != "true" {
		select {
		case progress, ok := <-updates:
			if !ok {
				return common.SendNotFoundError(c, "Import session")
			}
			return c.JSON(http.StatusOK, progress)
		case <-time.After(2 * time.Second):
			return common.SendNotFoundError(c, "Import session")
		}
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(resp)
	for {
		select {
		case <-ctx.Done():
			return nil
		case progress, ok := <-updates:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprint(resp, "data: "); err != nil {
				return nil
			}
			if err := enc.Encode(progress); err != nil {
				return nil
			}
			if _, err := fmt.Fprint(resp, "\n"); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
