// Package web holds the HTML templates and browser scripts served by the dashboard.
package web

import "embed"

// FS contains templates/*.html and static/*.
//
//go:embed templates/*.html static/*
var FS embed.FS
