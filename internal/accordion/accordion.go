// Package accordion tracks the single item whose detail text is expanded.
package accordion

import "github.com/pstuifzand/tui-smartlist/internal/model"

// Toggle returns the new expanded id after the user toggles id. Opening an
// item closes whichever was open before. Items without detail, unknown ids
// and DetailNone leave current unchanged.
func Toggle(items []*model.ListItem, current, id string, mode model.DetailMode) string {
	if mode == model.DetailNone {
		return current
	}
	item := model.FindItemByID(items, id)
	if item == nil || !item.HasDetail() {
		return current
	}
	if id == current {
		return ""
	}
	return id
}

// Controller holds the expanded id for one session
type Controller struct {
	expandedID string
}

// Toggle opens or closes the detail of id
func (c *Controller) Toggle(items []*model.ListItem, id string, mode model.DetailMode) {
	c.expandedID = Toggle(items, c.expandedID, id, mode)
}

// ExpandedID returns the open item, or "" when none is open
func (c *Controller) ExpandedID() string {
	return c.expandedID
}

// IsExpanded reports whether id's detail is open
func (c *Controller) IsExpanded(id string) bool {
	return id != "" && c.expandedID == id
}

// Close collapses any open detail
func (c *Controller) Close() {
	c.expandedID = ""
}

// Prune closes the open detail when its item no longer exists or lost its
// detail text
func (c *Controller) Prune(items []*model.ListItem) {
	if c.expandedID == "" {
		return
	}
	item := model.FindItemByID(items, c.expandedID)
	if item == nil || !item.HasDetail() {
		c.expandedID = ""
	}
}
