// Package dto defines the wire shapes for action params and results.
package dto

// RequestPermissionResult reply for requestPermission.
type RequestPermissionResult struct {
	Permission    string `json:"permission"`
	RequireAPIKey bool   `json:"requireApiKey"`
	Version       int    `json:"version"`
}

// APIReflectParams params for apiReflect.
type APIReflectParams struct {
	Scopes  []string `json:"scopes" binding:"required"`
	Actions []string `json:"actions"`
}

// APIReflectResult reply for apiReflect.
type APIReflectResult struct {
	Scopes  []string `json:"scopes"`
	Actions []string `json:"actions"`
}
