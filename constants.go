package main

import "time"

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// saveTimeout bounds a working set save made on behalf of a request.
const saveTimeout = 10 * time.Second

// Route constants
const (
	RouteHome    = "/"
	RouteCard    = "/card"
	RouteFlip    = "/flip"
	RouteUnknown = "/unknown"
	RouteKnown   = "/known"
	RouteImages  = "/images"
	RouteHealth  = "/healthz"
)

// Page text
const (
	PageTitle    = "Spanish Flash Card"
	PageHeading  = "Spanish Flash Card"
	DoneTitle    = "¡Enhorabuena!"
	DoneMessage  = "You know every word in the set."
	ErrorSaveSet = "Could not save your progress."
)

// Template names
const (
	templateIndex = "index.html"
	templateCard  = "card-content"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
