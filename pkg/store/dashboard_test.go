package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func loadedDashboard() *Dashboard {
	d := NewDashboard("user_abc12345")
	d.SetLoaded([]string{"a.pdf", "b.pdf", "c.pdf"}, 3)
	return d
}

func TestLoadLifecycle(t *testing.T) {
	d := NewDashboard("user_abc12345")
	assert.Equal(t, DashboardLoading, d.View().State)

	d.SetLoaded([]string{"a.pdf"}, 1)
	view := d.View()
	assert.Equal(t, DashboardLoaded, view.State)
	assert.Equal(t, 1, view.Count)

	d.SetError("connection refused")
	view = d.View()
	assert.Equal(t, DashboardError, view.State)
	assert.Equal(t, "connection refused", view.LastError)

	// Retry clears the previous error.
	d.SetLoading()
	assert.Empty(t, d.View().LastError)
}

func TestRequestDeleteGuards(t *testing.T) {
	d := loadedDashboard()

	assert.False(t, d.RequestDelete("missing.pdf"), "unknown file must be refused")
	assert.True(t, d.RequestDelete("a.pdf"))
	assert.Equal(t, "a.pdf", d.View().PendingDelete)

	// Re-request replaces the pending file.
	assert.True(t, d.RequestDelete("b.pdf"))
	assert.Equal(t, "b.pdf", d.View().PendingDelete)
}

func TestSuccessfulDeleteRemovesExactlyOne(t *testing.T) {
	d := loadedDashboard()
	assert.True(t, d.RequestDelete("b.pdf"))

	name := d.BeginDelete()
	assert.Equal(t, "b.pdf", name)
	assert.Empty(t, d.View().PendingDelete, "confirmation slot clears when delete starts")

	d.FinishDelete(name, true)
	view := d.View()
	assert.Equal(t, []string{"a.pdf", "c.pdf"}, view.Files)
	assert.Equal(t, 2, view.Count)
	assert.Empty(t, view.DeletingFile)
}

func TestFailedDeleteRestoresFile(t *testing.T) {
	d := loadedDashboard()
	d.RequestDelete("b.pdf")
	name := d.BeginDelete()

	d.FinishDelete(name, false)
	view := d.View()
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, view.Files)
	assert.Equal(t, 3, view.Count)
	assert.Empty(t, view.DeletingFile)
}

func TestSingleDeleteInFlight(t *testing.T) {
	d := loadedDashboard()
	d.RequestDelete("a.pdf")
	assert.Equal(t, "a.pdf", d.BeginDelete())

	// While a.pdf is deleting, nothing else may enter the pipeline.
	assert.False(t, d.RequestDelete("b.pdf"))
	assert.Empty(t, d.BeginDelete())

	d.FinishDelete("a.pdf", true)
	assert.True(t, d.RequestDelete("b.pdf"))
}

func TestCancelDelete(t *testing.T) {
	d := loadedDashboard()
	d.RequestDelete("a.pdf")
	d.CancelDelete()

	assert.Empty(t, d.View().PendingDelete)
	assert.Empty(t, d.BeginDelete(), "cancelled request must not start a delete")
	assert.Equal(t, 3, d.View().Count)
}

func TestClearAfterReset(t *testing.T) {
	d := loadedDashboard()
	d.RequestDelete("a.pdf")

	d.Clear()
	view := d.View()
	assert.Empty(t, view.Files)
	assert.Equal(t, 0, view.Count)
	assert.Empty(t, view.PendingDelete)
	assert.Empty(t, view.DeletingFile)
}

func TestViewIsACopy(t *testing.T) {
	d := loadedDashboard()
	view := d.View()
	view.Files[0] = "mutated"

	assert.Equal(t, "a.pdf", d.View().Files[0])
}
