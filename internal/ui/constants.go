package ui

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconMusic    = "🎵"
)

// Window and widget sizing
const (
	LogMinHeight    float32 = 240
	LabelWidth      float32 = 90
	DialogWidth     float32 = 460
	DialogHeight    float32 = 320
	HelpDialogWidth float32 = 520
)

// Texts shown before anything happens
const (
	TextIdle             = "Paste a playlist link and press Validate"
	TextNoPlaylist       = "No playlist validated yet"
	TextResolving        = "Resolving playlist..."
	TextDownloading      = "Downloading..."
	TextCancelling       = "Stopping after the current attempt..."
	TextGenrePlaceholder = "Empty: infer per track"
)

// Button captions
const (
	ButtonValidate = "Validate URL"
	ButtonDownload = "Download List"
	ButtonCancel   = "Cancel"
	ButtonBrowse   = "Browse"
	ButtonOpen     = IconFolder + " Open"
)
