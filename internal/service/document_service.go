package service

import (
	"context"

	"trupilot-gateway/internal/dto"
	"trupilot-gateway/internal/mapper"
	"trupilot-gateway/internal/pkg/logger"
	"trupilot-gateway/internal/pkg/serverutils"
	"trupilot-gateway/internal/repository/contract"
	"trupilot-gateway/pkg/assistant"
	"trupilot-gateway/pkg/events"
	"trupilot-gateway/pkg/store"
)

// IDocumentService drives the file-manager view: server-side list,
// the delete confirmation flow, uploads, and the destructive reset.
type IDocumentService interface {
	OpenDashboard(ctx context.Context, sessionID string) (*dto.DashboardResponse, error)
	Reload(ctx context.Context, sessionID string) (*dto.DashboardResponse, error)
	Upload(ctx context.Context, files []assistant.FilePayload) (*dto.UploadDocumentsResponse, error)
	RequestDelete(ctx context.Context, sessionID string, request *dto.DeleteRequestRequest) (*dto.DashboardResponse, error)
	CancelDelete(ctx context.Context, sessionID string) (*dto.DashboardResponse, error)
	ConfirmDelete(ctx context.Context, sessionID string) (*dto.DashboardResponse, error)
	ResetAll(ctx context.Context, sessionID string, request *dto.ResetAllRequest) (*dto.ResetAllResponse, error)
}

type documentService struct {
	client      *assistant.Client
	sessionRepo contract.ISessionRepository
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewDocumentService(
	client *assistant.Client,
	sessionRepo contract.ISessionRepository,
	publisher IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		client:      client,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		logger:      log,
	}
}

// OpenDashboard creates the per-view dashboard on first access and
// runs the initial list fetch. A failed fetch is not an error reply:
// the dashboard lands in the Error state with a retry affordance.
func (ds *documentService) OpenDashboard(ctx context.Context, sessionID string) (*dto.DashboardResponse, error) {
	dash, found := ds.sessionRepo.GetDashboard(ctx, sessionID)
	if !found {
		dash = store.NewDashboard(sessionID)
	}
	return ds.load(ctx, dash)
}

// Reload re-fetches the list, e.g. after an upload or a failed
// initial load.
func (ds *documentService) Reload(ctx context.Context, sessionID string) (*dto.DashboardResponse, error) {
	dash, err := ds.dashboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ds.load(ctx, dash)
}

func (ds *documentService) load(ctx context.Context, dash *store.Dashboard) (*dto.DashboardResponse, error) {
	dash.SetLoading()

	listing, err := ds.client.ListDocuments(ctx)
	if err != nil {
		dash.SetError(err.Error())
		ds.logger.Error("Documents", "List fetch failed", map[string]interface{}{
			"session_id": dash.ID,
			"error":      err.Error(),
		})
	} else {
		// Backend count is the source of truth on load; local
		// mutations adjust it afterwards.
		dash.SetLoaded(listing.Files, listing.Count)
	}

	if err := ds.sessionRepo.SaveDashboard(ctx, dash); err != nil {
		return nil, err
	}
	return mapper.ToDashboardResponse(dash.View()), nil
}

// Upload streams the selected documents through to the backend. The
// empty-selection guard lives in the client and fires before any
// network call.
func (ds *documentService) Upload(ctx context.Context, files []assistant.FilePayload) (*dto.UploadDocumentsResponse, error) {
	res, err := ds.client.UploadDocuments(ctx, files)
	if err != nil {
		return nil, err
	}

	ds.publishActivity(ctx, events.TypeDocumentUploaded, map[string]interface{}{
		"uploaded": len(res.UploadedFiles),
	})

	return &dto.UploadDocumentsResponse{
		Message:       res.Message,
		UploadedFiles: res.UploadedFiles,
		Details:       res.Details,
	}, nil
}

// RequestDelete parks one listed file in the confirmation slot. No
// network call happens until the user confirms.
func (ds *documentService) RequestDelete(ctx context.Context, sessionID string, request *dto.DeleteRequestRequest) (*dto.DashboardResponse, error) {
	dash, err := ds.dashboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !dash.RequestDelete(request.FileName) {
		return nil, serverutils.Conflict("file is not listed or another deletion is in progress")
	}
	if err := ds.sessionRepo.SaveDashboard(ctx, dash); err != nil {
		return nil, err
	}
	return mapper.ToDashboardResponse(dash.View()), nil
}

func (ds *documentService) CancelDelete(ctx context.Context, sessionID string) (*dto.DashboardResponse, error) {
	dash, err := ds.dashboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	dash.CancelDelete()
	if err := ds.sessionRepo.SaveDashboard(ctx, dash); err != nil {
		return nil, err
	}
	return mapper.ToDashboardResponse(dash.View()), nil
}

// ConfirmDelete issues the delete for the pending file. On success
// exactly that file leaves the list and the count drops by one; on
// failure the file returns to its listed state untouched and the
// error surfaces as a blocking notification.
func (ds *documentService) ConfirmDelete(ctx context.Context, sessionID string) (*dto.DashboardResponse, error) {
	dash, err := ds.dashboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fileName := dash.BeginDelete()
	if fileName == "" {
		return nil, serverutils.Conflict("no deletion pending confirmation")
	}
	_ = ds.sessionRepo.SaveDashboard(ctx, dash)

	_, delErr := ds.client.DeleteDocument(ctx, fileName)
	dash.FinishDelete(fileName, delErr == nil)
	if err := ds.sessionRepo.SaveDashboard(ctx, dash); err != nil {
		return nil, err
	}

	if delErr != nil {
		ds.logger.Error("Documents", "Delete failed", map[string]interface{}{
			"session_id": sessionID,
			"file":       fileName,
			"error":      delErr.Error(),
		})
		return nil, delErr
	}

	ds.publishActivity(ctx, events.TypeDocumentDeleted, map[string]interface{}{
		"session_id": sessionID,
		"file":       fileName,
	})
	return mapper.ToDashboardResponse(dash.View()), nil
}

// ResetAll wipes every document plus the backend index and cache.
// The confirm flag is the modal round-trip; without it the call is
// refused. Failure leaves the prior list and count untouched.
func (ds *documentService) ResetAll(ctx context.Context, sessionID string, request *dto.ResetAllRequest) (*dto.ResetAllResponse, error) {
	if !request.Confirm {
		return nil, serverutils.BadRequest("reset requires explicit confirmation")
	}
	dash, err := ds.dashboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	res, err := ds.client.ResetAllDocuments(ctx)
	if err != nil {
		ds.logger.Error("Documents", "System reset failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	dash.Clear()
	if err := ds.sessionRepo.SaveDashboard(ctx, dash); err != nil {
		return nil, err
	}

	ds.publishActivity(ctx, events.TypeSystemReset, map[string]interface{}{
		"session_id":    sessionID,
		"deleted_files": res.Details.DeletedFilesCount,
	})

	return &dto.ResetAllResponse{
		Message:           res.Message,
		DeletedFilesCount: res.Details.DeletedFilesCount,
		IndexStatus:       res.Details.IndexStatus,
		CacheStatus:       res.Details.CacheStatus,
	}, nil
}

func (ds *documentService) dashboard(ctx context.Context, sessionID string) (*store.Dashboard, error) {
	dash, found := ds.sessionRepo.GetDashboard(ctx, sessionID)
	if !found {
		return nil, serverutils.NotFound("unknown dashboard session")
	}
	return dash, nil
}

func (ds *documentService) publishActivity(ctx context.Context, eventType string, payload map[string]interface{}) {
	if ds.publisher == nil {
		return
	}
	if err := ds.publisher.Publish(ctx, events.NewActivity(eventType, payload)); err != nil {
		ds.logger.Warn("Documents", "Failed to publish activity event", map[string]interface{}{"error": err.Error()})
	}
}
