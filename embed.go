package main

import "embed"

// assets holds the HTML templates and static files served by the site.
//
//go:embed templates static
var assets embed.FS
