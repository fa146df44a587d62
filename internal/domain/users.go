package domain

import "time"

type Users struct {
	ID        int64     `db:"id" json:"id"`
	GithubID  int64     `db:"github_id" json:"github_id"`
	Login     string    `db:"login" json:"login"`
	Name      *string   `db:"name" json:"name,omitempty"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UsersTable struct {
	ID        string
	GithubID  string
	Login     string
	Name      string
	AvatarURL string
	CreatedAt string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:        "id",
		GithubID:  "github_id",
		Login:     "login",
		Name:      "name",
		AvatarURL: "avatar_url",
		CreatedAt: "created_at",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}

// GithubUser is the subset of the GitHub /user payload kept on login
type GithubUser struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}
