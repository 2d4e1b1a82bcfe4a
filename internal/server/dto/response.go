package dto

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Sort int    `json:"sort"`
}

// StreamResponse is the API representation of a stream, denormalized with the
// resolved category name.
type StreamResponse struct {
	ID           int    `json:"id"`
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Icon         string `json:"icon"`
	Sort         int    `json:"sort"`
}

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// HealthResponse is the payload of a health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
