// Package server exposes the explore flow as a small JSON API on gin.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/v1/choices           selectable years, parties, decades, names
//	GET  /api/v1/explore           query-string core.Request
//	POST /api/v1/explore           JSON or form core.Request
//	GET  /api/v1/topics?q=&n=      ranked topics with keywords
//	GET  /api/v1/names?q=          fuzzy speaker name matches
package server
