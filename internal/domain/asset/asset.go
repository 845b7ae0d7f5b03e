package asset

import "time"

type Asset struct {
	ID            int64      `json:"id,omitempty"`
	ClientID      int64      `json:"client_id,omitempty"`
	Name          string     `json:"name"`
	Serial        string     `json:"serial,omitempty"`
	Make          string     `json:"make,omitempty"`
	Model         string     `json:"model,omitempty"`
	Location      string     `json:"location,omitempty"`
	ClientName    string     `json:"client_name,omitempty"`
	LastInspected *time.Time `json:"last_inspected,omitempty"`
}

type Client struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}
