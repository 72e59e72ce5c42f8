// Package api provides the client for the marketplace REST API.
//
// All endpoints live under /api/v1 on the configured base URL:
//   - Public: GET /feed, POST /submit, POST /feedback
//   - Auth: GET /auth/captcha, POST /auth/login, POST /auth/register
//   - Admin (bearer token with isAdmin): /admin/users, /admin/prices/{code},
//     /admin/feedback, /admin/logs
//
// Errors come back as JSON {"error": "..."} and are surfaced as *APIError.
package api
