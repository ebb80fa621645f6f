package packets

// WeekdayFlagsRequest mirrors the seven recurrence booleans on a playlist.
type WeekdayFlagsRequest struct {
	Sunday    bool `json:"sunday"`
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
}

type CreateTaskRequest struct {
	Title    string `json:"title" binding:"required"`
	Duration int    `json:"duration" binding:"required,gt=0"` // whole minutes
}

// CreatePlaylistRequest creates a playlist together with its ordered tasks;
// task order follows the array order.
type CreatePlaylistRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description *string             `json:"description"`
	Icon        *string             `json:"icon"`
	Days        WeekdayFlagsRequest `json:"days"`
	Tasks       []CreateTaskRequest `json:"tasks"`
}

type UpdatePlaylistRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Icon        *string              `json:"icon"`
	Days        *WeekdayFlagsRequest `json:"days"`
}

// SetTaskCompletionRequest marks or unmarks a task for one calendar day.
// Date defaults to today when omitted.
type SetTaskCompletionRequest struct {
	IsCompleted *bool   `json:"is_completed" binding:"required"`
	Date        *string `json:"date"` // YYYY-MM-DD
}

// CleanupRequest clears one day's completions for a playlist.
type CleanupRequest struct {
	Date *string `json:"date"` // YYYY-MM-DD, defaults to today
}

type OpenRunRequest struct {
	PlaylistID int     `json:"playlist_id" binding:"required"`
	Date       *string `json:"date"` // YYYY-MM-DD, defaults to today
}

type SelectTaskRequest struct {
	Index *int `json:"index" binding:"required"`
}
