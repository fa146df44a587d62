package domain

import "time"

const (
	CodespaceStateAvailable = "Available"
	DefaultMachineType      = "basicLinux32gb"
)

// Repository is the subset of a GitHub repository needed to create a codespace
type Repository struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
}

// Machine is a codespace machine type offered for a repository
type Machine struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// CodespaceSpec is the body of a create-codespace request
type CodespaceSpec struct {
	RepositoryID       int64  `json:"repository_id"`
	Ref                string `json:"ref"`
	Location           string `json:"location"`
	Machine            string `json:"machine"`
	DevcontainerPath   string `json:"devcontainer_path"`
	DisplayName        string `json:"display_name"`
	IdleTimeoutMinutes int    `json:"idle_timeout_minutes"`
}

// Codespace is a GitHub codespace as exposed to the client
type Codespace struct {
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	State        string    `json:"state"`
	WebURL       string    `json:"web_url"`
	CreatedAt    time.Time `json:"created_at"`
	ProblemID    string    `json:"problem_id,omitempty"`
	ProblemTitle string    `json:"problem_title,omitempty"`
}
