package speech

// Plan is the per-page normalization result. DisplayToAudio has one
// entry per display sentence, -1 where the sentence was dropped;
// AudioToDisplay has one entry per audio unit. Both mappings are
// monotonic in sentence order.
type Plan struct {
	AudioSentences []string
	DisplayToAudio []int
	AudioToDisplay []int
}

// AudioCount returns the number of audio units in the plan.
func (p Plan) AudioCount() int {
	return len(p.AudioSentences)
}

// AudioFor resolves a display index to the nearest audio unit: first
// non-dropped entry scanning forward from the clamped index, then
// backward. Returns -1 only when the page has no audio units.
func (p Plan) AudioFor(displayIdx int) int {
	if len(p.AudioSentences) == 0 || len(p.DisplayToAudio) == 0 {
		return -1
	}
	if displayIdx < 0 {
		displayIdx = 0
	}
	if displayIdx >= len(p.DisplayToAudio) {
		displayIdx = len(p.DisplayToAudio) - 1
	}

	for i := displayIdx; i < len(p.DisplayToAudio); i++ {
		if p.DisplayToAudio[i] >= 0 {
			return p.DisplayToAudio[i]
		}
	}
	for i := displayIdx - 1; i >= 0; i-- {
		if p.DisplayToAudio[i] >= 0 {
			return p.DisplayToAudio[i]
		}
	}
	return -1
}

// DisplayFor resolves an audio index to its display sentence. Always
// defined for in-range indices; -1 otherwise.
func (p Plan) DisplayFor(audioIdx int) int {
	if audioIdx < 0 || audioIdx >= len(p.AudioToDisplay) {
		return -1
	}
	return p.AudioToDisplay[audioIdx]
}
