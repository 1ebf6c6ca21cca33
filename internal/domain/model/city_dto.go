package model

// CityParamsDTO carries the mutable city fields for create and full-replace
// update requests. Coordinates are pointers so a missing field is
// distinguishable from zero.
type CityParamsDTO struct {
	Name      string   `json:"name"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// CityFilter narrows and orders city listings. Name and Country are
// case-insensitive substring matches; SortBy must be one of the allowed
// columns and silently falls back to id otherwise.
type CityFilter struct {
	Name    string
	Country string
	SortBy  string
	Order   string
}
