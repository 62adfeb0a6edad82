package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const whatItDoesText = "Downloads an entire YouTube playlist as MP3 files and fills each file " +
	"with as much metadata as can be found: artist, title, featured artist, album, " +
	"release date, genre and cover art.\n\n" +
	"Artist and title are guessed from the video title, so the result is not always right. " +
	"The playlist title becomes the album. A genre found in the playlist title is offered " +
	"for every track; clear the genre field to guess it per track instead.\n\n" +
	"Items that keep failing are retried a few times from scratch and then skipped.\n\n" +
	"Only download music you are allowed to. Support the artists you listen to."

const findingURLText = "Open the playlist on YouTube and copy the address from the browser. " +
	"It contains \"list=\" followed by the playlist ID, for example:\n\n" +
	"https://www.youtube.com/playlist?list=PL1234567890\n\n" +
	"A video link that is playing inside a playlist works too."

// showHelp displays a read-only text in a dialog
func showHelp(title, text string, window fyne.Window) {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord

	d := dialog.NewCustom(title, "Close", label, window)
	d.Resize(fyne.NewSize(HelpDialogWidth, 0))
	d.Show()
}
