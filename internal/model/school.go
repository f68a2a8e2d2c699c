package model

import (
	"time"
)

// School is a UDISE directory record
type School struct {
	UDISECode string `json:"udiseCode" bson:"udiseCode"` // 11 decimal digits, unique key
	Name      string `json:"name" bson:"name"`
	Address   string `json:"address,omitempty" bson:"address,omitempty"`
	District  string `json:"district,omitempty" bson:"district,omitempty"`
	Block     string `json:"block,omitempty" bson:"block,omitempty"`
	State     string `json:"state,omitempty" bson:"state,omitempty"`
}

// CachedSchools is the single shared offline school entry.
// The whole entry expires at once; ExpiresAt is reset on every merge-add.
type CachedSchools struct {
	Schools   []School  `json:"schools"`
	CachedAt  time.Time `json:"cachedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry is past its shared TTL at the given instant.
func (c *CachedSchools) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Find returns the cached school with the given UDISE code, or nil.
func (c *CachedSchools) Find(udise string) *School {
	for i := range c.Schools {
		if c.Schools[i].UDISECode == udise {
			return &c.Schools[i]
		}
	}
	return nil
}

// CacheInfo summarizes the offline school entry for the shell
type CacheInfo struct {
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expiresAt"`
	DaysLeft  int       `json:"daysLeft"`
}
