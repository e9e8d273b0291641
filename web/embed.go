// Package web holds the embedded browser UI assets.
package web

import "embed"

//go:embed static
var Static embed.FS
