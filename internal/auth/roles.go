package auth

import "strings"

// Role is an access level within one housing company.
type Role string

const (
	// RoleViewer reads plans, scores and forecasts.
	RoleViewer Role = "viewer"
	// RoleBoard additionally runs financing calculations and exports.
	RoleBoard Role = "board"
	// RoleManager additionally mutates portfolio records and runs scoring.
	RoleManager Role = "manager"
)

// NormalizeRole lowercases and validates a role string.
func NormalizeRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleViewer:
		return RoleViewer, true
	case RoleBoard:
		return RoleBoard, true
	case RoleManager:
		return RoleManager, true
	default:
		return "", false
	}
}

// RoleAtLeast reports whether have satisfies the required role.
func RoleAtLeast(have, required Role) bool {
	return roleRank(have) >= roleRank(required)
}

func roleRank(role Role) int {
	switch role {
	case RoleManager:
		return 3
	case RoleBoard:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}
