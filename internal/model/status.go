package model

// ItemState is the position of a playlist item in the download pipeline
type ItemState string

const (
	// ItemStateFetching means the raw media is being downloaded
	ItemStateFetching ItemState = "Fetching"

	// ItemStateInferring means metadata is being derived from the raw fields
	ItemStateInferring ItemState = "Inferring"

	// ItemStateReencoding means the raw audio is being converted to mp3
	ItemStateReencoding ItemState = "Reencoding"

	// ItemStateTagging means ID3 tags are being written
	ItemStateTagging ItemState = "Tagging"

	// ItemStateDone means the item finished successfully
	ItemStateDone ItemState = "Done"

	// ItemStateSkipped means every attempt failed and the item was dropped
	ItemStateSkipped ItemState = "Skipped"
)

// String returns the string representation of ItemState
func (s ItemState) String() string {
	return string(s)
}

// IsFinished returns true if the item reached a terminal state
func (s ItemState) IsFinished() bool {
	return s == ItemStateDone || s == ItemStateSkipped
}
