package deepgram

// Response is the subset of the Deepgram prerecorded transcription response
// the pipeline consumes: the diarized paragraph/sentence tree.
type Response struct {
	Results Results `json:"results"`
}

type Results struct {
	Channels []Channel `json:"channels"`
}

type Channel struct {
	Alternatives []Alternative `json:"alternatives"`
}

type Alternative struct {
	Transcript string          `json:"transcript"`
	Paragraphs ParagraphsBlock `json:"paragraphs"`
}

type ParagraphsBlock struct {
	Transcript string      `json:"transcript"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph carries the diarization label and ordered sentences.
type Paragraph struct {
	Speaker   int        `json:"speaker"`
	Sentences []Sentence `json:"sentences"`
	Start     float64    `json:"start"`
	End       float64    `json:"end"`
}

type Sentence struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Paragraphs returns the paragraph list of the first channel's first
// alternative, or nil when the tree is missing.
func (r *Response) Paragraphs() []Paragraph {
	if r == nil || len(r.Results.Channels) == 0 {
		return nil
	}
	alts := r.Results.Channels[0].Alternatives
	if len(alts) == 0 {
		return nil
	}
	return alts[0].Paragraphs.Paragraphs
}
