package models

import "time"

// AllowListEntry is one admin IP record in the "admin_ips_list" collection.
// The simple "admin_ips" string list is derived from the active entries here.
type AllowListEntry struct {
	ID        string    `json:"id"`
	IPAddress string    `json:"ip_address"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}
