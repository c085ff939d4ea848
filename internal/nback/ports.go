package nback

// Presenter is the stimulus-presentation port: the host speaks or
// displays the round's symbol and highlights its grid cell. The session
// calls it at round boundaries and ignores its outcome.
type Presenter interface {
	Present(round Round)
}

// FeedbackSink is the audio/haptic feedback port, invoked after each
// scored round.
type FeedbackSink interface {
	RoundFeedback(correct bool)
}

type nopPresenter struct{}

func (nopPresenter) Present(Round) {}

type nopFeedback struct{}

func (nopFeedback) RoundFeedback(bool) {}
