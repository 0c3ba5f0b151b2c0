package request

// SuggestionName is the name of the phrase suggester in requests and responses.
const SuggestionName = "simple_phrase"

// Suggest is a spelling-suggestion request.
type Suggest struct {
	Suggest SuggestBody `json:"suggest"`
}

// SuggestBody holds the text and the phrase suggester.
type SuggestBody struct {
	Text         string        `json:"text"`
	SimplePhrase PhraseRequest `json:"simple_phrase"`
}

// PhraseRequest wraps a phrase suggester.
type PhraseRequest struct {
	Phrase Phrase `json:"phrase"`
}

// Phrase corrects whole phrases using n-gram candidates.
type Phrase struct {
	Field           string            `json:"field"`
	Size            int               `json:"size"`
	GramSize        int               `json:"gram_size"`
	DirectGenerator []DirectGenerator `json:"direct_generator"`
}

// DirectGenerator produces candidate terms for one field.
type DirectGenerator struct {
	Field       string `json:"field"`
	SuggestMode string `json:"suggest_mode"`
}
