// Package policy centralizes the role capability map. Endpoints ask for an
// action instead of comparing role strings, so the four-role hierarchy
// lives in exactly one place.
package policy

import (
	"github.com/AshokWPD/gold-updated/internal/models"
)

type Action string

const (
	// Author and manage broadcast messages.
	ActionMessageCreate Action = "message:create"
	ActionMessageManage Action = "message:manage"
	// View the per-group read/unread partition of a message.
	ActionReadStatusView Action = "message:read-status"
	// Create groups, mutate membership, delete groups.
	ActionGroupManage Action = "group:manage"
	// Review and assign safety feedback reports.
	ActionFeedbackReview Action = "feedback:review"
	// Full administrative surface: user management, audit views, purge.
	ActionAdminPanel Action = "admin:panel"
)

var capabilities = map[models.Role]map[Action]bool{
	models.RoleUser: {},
	models.RoleSubAdmin: {
		ActionMessageCreate:  true,
		ActionMessageManage:  true,
		ActionReadStatusView: true,
	},
	models.RoleUserAndSubAdmin: {
		ActionMessageCreate:  true,
		ActionMessageManage:  true,
		ActionReadStatusView: true,
	},
	models.RoleAdmin: {
		ActionMessageCreate:  true,
		ActionMessageManage:  true,
		ActionReadStatusView: true,
		ActionGroupManage:    true,
		ActionFeedbackReview: true,
		ActionAdminPanel:     true,
	},
}

// Allowed reports whether the role may perform the action. Unknown roles
// have no capabilities.
func Allowed(role models.Role, action Action) bool {
	caps, ok := capabilities[role]
	if !ok {
		return false
	}
	return caps[action]
}
