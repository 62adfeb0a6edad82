// Package ui contains the Fyne desktop window: a playlist link is validated
// into a playlist, then downloaded item by item while progress, an estimated
// time remaining and one line per finished track are shown.
package ui
