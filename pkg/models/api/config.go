package api

import "time"

// ConfigRecord mirrors the persisted site configuration object.
type ConfigRecord map[string]interface{}

func (c ConfigRecord) CustomLogo() string {
	name, _ := c["customLogo"].(string)
	return name
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
