// Package main provides the entry point for the linkdeck dashboard.
// It initializes and runs a web server using the Fiber framework that lets
// authenticated users browse named, ordered groups of external links and
// administrators manage groups, links and their display order through a
// REST API. The application uses gorm for data persistence and stores
// per-user preferences as JSON-encoded settings.
package main
