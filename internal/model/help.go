package model

type HelpPage struct {
	Title       string
	Description string
	Content     string // Sanitized HTML
}
