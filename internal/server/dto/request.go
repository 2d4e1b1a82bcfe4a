package dto

// --- Read API Requests ---

// StreamsRequest is the query surface of the public read API. The parameters
// are layered: type=categories wins, then id, then category_id, else all
// streams. Unparseable values bind as zero and silently fall back to the
// full listing, so Validate never rejects.
type StreamsRequest struct {
	Type       string `query:"type"`
	ID         int    `query:"id"`
	CategoryID int    `query:"category_id"`
}

// Validate implements Validatable.
func (r *StreamsRequest) Validate() error { return nil }

// --- Auth Requests ---

// LoginRequest carries the shared admin credential.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate implements Validatable.
func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return BadRequest("username and password are required")
	}
	return nil
}

// --- Admin Requests ---

// CategoryFormRequest is the add/update form for categories. ID > 0 selects
// update, otherwise a new category is added. Field-level validation (name
// required, defaults) lives in the catalog service.
type CategoryFormRequest struct {
	ID   int    `json:"id" form:"id"`
	Name string `json:"name" form:"name"`
	Icon string `json:"icon" form:"icon"`
	Sort int    `json:"sort" form:"sort"`
}

// Validate implements Validatable.
func (r *CategoryFormRequest) Validate() error { return nil }

// StreamFormRequest is the add/update form for streams.
type StreamFormRequest struct {
	ID         int    `json:"id" form:"id"`
	CategoryID int    `json:"category_id" form:"category_id"`
	Name       string `json:"name" form:"name"`
	URL        string `json:"url" form:"url"`
	Icon       string `json:"icon" form:"icon"`
	Sort       int    `json:"sort" form:"sort"`
}

// Validate implements Validatable.
func (r *StreamFormRequest) Validate() error { return nil }

// DeleteRequest identifies a record to delete by query parameter.
type DeleteRequest struct {
	Delete int `query:"delete"`
}

// Validate implements Validatable.
func (r *DeleteRequest) Validate() error {
	if r.Delete <= 0 {
		return BadRequest("missing valid delete parameter")
	}
	return nil
}

// GetStreamRequest fetches a single stream for the admin edit form.
type GetStreamRequest struct {
	ID int `query:"id"`
}

// Validate implements Validatable.
func (r *GetStreamRequest) Validate() error {
	if r.ID <= 0 {
		return BadRequest("missing valid id parameter")
	}
	return nil
}

// SortRequest carries a drag-and-drop reordering: the full or partial list of
// record IDs in their new display order.
type SortRequest struct {
	Type  string `json:"type"`
	Items []int  `json:"items"`
}

// Validate implements Validatable.
func (r *SortRequest) Validate() error {
	if r.Type != "category" && r.Type != "stream" {
		return BadRequest("unknown sort type")
	}
	if len(r.Items) == 0 {
		return BadRequest("items must not be empty")
	}
	return nil
}

// ExportRequest selects the export format and an optional category filter.
type ExportRequest struct {
	Format   string `query:"format"`
	Category int    `query:"category"`
}

// Validate implements Validatable.
func (r *ExportRequest) Validate() error { return nil }

// HealthRequest is the (empty) health check request.
type HealthRequest struct{}

// Validate implements Validatable.
func (r *HealthRequest) Validate() error { return nil }
