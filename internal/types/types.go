package types

// WordPair is one vocabulary entry. Two pairs are the same card when both
// fields match.
type WordPair struct {
	Spanish string `json:"spanish"`
	English string `json:"english"`
}

// Face is the visible side of a card as the UI draws it.
type Face struct {
	Title string `json:"title"`
	Word  string `json:"word"`
	Image string `json:"image"`
	Color string `json:"color"`
	Back  bool   `json:"back"`
}
