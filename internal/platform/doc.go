// Package platform contains OS integration and external tooling glue:
// playlist resolution through yt-dlp, filesystem helpers and OS reveal.
package platform
