package model

// Site is a guarded location guards are assigned to.
type Site struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}
