package packets

import "time"

type TaskResponse struct {
	ID          int       `json:"id"`
	PlaylistID  int       `json:"playlist_id"`
	Title       string    `json:"title"`
	Duration    int       `json:"duration"`
	Order       int       `json:"order"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PlaylistResponse struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Sunday      bool           `json:"sunday"`
	Monday      bool           `json:"monday"`
	Tuesday     bool           `json:"tuesday"`
	Wednesday   bool           `json:"wednesday"`
	Thursday    bool           `json:"thursday"`
	Friday      bool           `json:"friday"`
	Saturday    bool           `json:"saturday"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Tasks       []TaskResponse `json:"tasks"`
}

// TaskStatusResponse is the slim acknowledgement for a completion change.
type TaskStatusResponse struct {
	ID          int  `json:"id"`
	IsCompleted bool `json:"is_completed"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RunTaskResponse struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Duration         int    `json:"duration"`
	Order            int    `json:"order"`
	State            string `json:"state"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Expired          bool   `json:"expired"`
	IsCompleted      bool   `json:"is_completed"`
}

type RunResponse struct {
	ID             string            `json:"id"`
	PlaylistID     int               `json:"playlist_id"`
	Date           string            `json:"date"`
	Cursor         int               `json:"cursor"`
	CompletedCount int               `json:"completed_count"`
	TotalCount     int               `json:"total_count"`
	Percent        float64           `json:"percent"`
	Tasks          []RunTaskResponse `json:"tasks"`
}
