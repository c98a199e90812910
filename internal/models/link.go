package models

import "time"

// YoutubeLink is a saved lecture link
type YoutubeLink struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title"`
	URL     string    `json:"url" yaml:"url"`
	AddedAt time.Time `json:"addedAt" yaml:"addedAt"`
}
