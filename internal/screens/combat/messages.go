package combat

// Both messages carry the token of the problem that scheduled them. A
// message whose token no longer names the current problem is dropped.

// tickMsg is sent every second to count the timer down.
type tickMsg struct {
	token string
}

// feedbackDoneMsg is sent when the resolution of an answer has been on
// screen for the feedback delay.
type feedbackDoneMsg struct {
	token string
}
