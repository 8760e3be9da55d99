package github

import "time"

// userResponse is the subset of GET /users/{login} used for a card.
type userResponse struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	CreatedAt   time.Time `json:"created_at"`
}

// repoResponse is one entry of GET /users/{login}/repos.
type repoResponse struct {
	Name         string `json:"name"`
	Fork         bool   `json:"fork"`
	Stars        int    `json:"stargazers_count"`
	Forks        int    `json:"forks_count"`
	OpenIssues   int    `json:"open_issues_count"`
	LanguagesURL string `json:"languages_url"`
	Owner        struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// searchCountResponse is the part of a search result that carries the count.
type searchCountResponse struct {
	TotalCount int `json:"total_count"`
}

// searchIssuesResponse lists matching issues or pull requests.
type searchIssuesResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		RepositoryURL string `json:"repository_url"`
	} `json:"items"`
}
