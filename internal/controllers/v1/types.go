package v1

import (
	ez_uuid "github.com/easyfinances/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIName struct {
	Name string `uri:"name" binding:"required" example:"Rent"` // Name of the resource
}

// QueryPeriod selects the period of an aggregation.
type QueryPeriod struct {
	Period string `form:"period" example:"this_month"` // One of this_month, last_month, last_90_days, this_year. Defaults to this_month.
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// defaultLimit is the number of resources returned by list endpoints
// unless the limit parameter is set.
const defaultLimit = 50
