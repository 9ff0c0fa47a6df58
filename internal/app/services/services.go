// Package services contains the application's business logic. Services
// validate input, call into repositories and the planner core, and map
// storage failures onto the apperrors sentinels the HTTP layer renders.
package services
