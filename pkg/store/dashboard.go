// FILE: pkg/store/dashboard.go
// PURPOSE: Per-view document dashboard state (list, delete
//          confirmation flow, bulk reset).

package store

import (
	"sync"
	"time"
)

const (
	DashboardLoading = "LOADING"
	DashboardLoaded  = "LOADED"
	DashboardError   = "ERROR"
)

// Dashboard tracks the document-management view for one session. The
// backend-provided count is trusted on load; after a local delete the
// count is decremented alongside the list so the two stay reconciled.
type Dashboard struct {
	ID    string   `json:"id"`
	State string   `json:"state"`
	Files []string `json:"files"`
	Count int      `json:"count"`

	// At most one file pending confirmation and at most one delete
	// in flight at any time. Deletions are serialized.
	PendingDelete string `json:"pending_delete"`
	DeletingFile  string `json:"deleting_file"`

	LastError string    `json:"last_error"`
	CreatedAt time.Time `json:"created_at"`

	mu sync.Mutex
}

// NewDashboard starts a dashboard in the Loading state; the first
// list fetch resolves it to Loaded or Error.
func NewDashboard(sessionID string) *Dashboard {
	return &Dashboard{
		ID:        sessionID,
		State:     DashboardLoading,
		Files:     []string{},
		CreatedAt: time.Now(),
	}
}

// SetLoading resets the dashboard for a (re)fetch.
func (d *Dashboard) SetLoading() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State = DashboardLoading
	d.LastError = ""
}

// SetLoaded stores the fetched list and the backend's count.
func (d *Dashboard) SetLoaded(files []string, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Files = append([]string{}, files...)
	d.Count = count
	d.State = DashboardLoaded
	d.LastError = ""
}

// SetError records a failed list fetch; the UI offers a retry.
func (d *Dashboard) SetError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State = DashboardError
	d.LastError = msg
}

// RequestDelete moves one listed file to PendingConfirmation. It
// refuses while another delete is in flight and for unknown files.
func (d *Dashboard) RequestDelete(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.DeletingFile != "" || !d.containsLocked(name) {
		return false
	}
	d.PendingDelete = name
	return true
}

// CancelDelete clears the pending confirmation, if any.
func (d *Dashboard) CancelDelete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.PendingDelete = ""
}

// BeginDelete promotes the pending file to Deleting and clears the
// confirmation slot. Returns the file name, or "" when there is
// nothing pending or a delete is already in flight.
func (d *Dashboard) BeginDelete() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.PendingDelete == "" || d.DeletingFile != "" {
		return ""
	}
	d.DeletingFile = d.PendingDelete
	d.PendingDelete = ""
	return d.DeletingFile
}

// FinishDelete resolves an in-flight delete. On success exactly the
// deleted file leaves the list and the count drops by one; on failure
// the file returns to Listed with list and count untouched.
func (d *Dashboard) FinishDelete(name string, success bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.DeletingFile = ""
	if !success {
		return
	}
	kept := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		if f != name {
			kept = append(kept, f)
		}
	}
	d.Files = kept
	d.Count--
}

// Clear wipes the list after a successful bulk reset.
func (d *Dashboard) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Files = []string{}
	d.Count = 0
	d.PendingDelete = ""
	d.DeletingFile = ""
}

// View returns a consistent copy for rendering.
func (d *Dashboard) View() Dashboard {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Dashboard{
		ID:            d.ID,
		State:         d.State,
		Files:         append([]string{}, d.Files...),
		Count:         d.Count,
		PendingDelete: d.PendingDelete,
		DeletingFile:  d.DeletingFile,
		LastError:     d.LastError,
		CreatedAt:     d.CreatedAt,
	}
}

func (d *Dashboard) containsLocked(name string) bool {
	for _, f := range d.Files {
		if f == name {
			return true
		}
	}
	return false
}
