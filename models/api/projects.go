package api

// NewProjectRequest is the body of POST /new_project
type NewProjectRequest struct {
	ChannelName  string `json:"channel_name"`
	CategoryName string `json:"category_name"`
	Guideline    string `json:"guideline"`
}

// ProjectNameRequest is the body of POST /complete_project and POST /reactivate_project
type ProjectNameRequest struct {
	ChannelName string `json:"channel_name"`
}

type NewProjectResponse struct {
	Status         string `json:"status"`
	ChannelID      int64  `json:"channel_id"`
	ChannelMention string `json:"channel_mention"`
}

type StatusMessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProjectSummary is one entry of GET /list_projects
type ProjectSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SetupResponse struct {
	Status              string `json:"status"`
	ActiveCategoryID    int64  `json:"active_category_id"`
	CompletedCategoryID int64  `json:"completed_category_id"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
