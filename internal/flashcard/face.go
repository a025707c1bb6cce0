package flashcard

import "tarjeta/internal/types"

const (
	FrontImage = "card_front.svg"
	BackImage  = "card_back.svg"
)

// Face returns what the card shows right now: the Spanish word in black on
// the front image, or the English word in white on the back image.
func (st State) Face() types.Face {
	if st.Flipped {
		return types.Face{
			Title: "English",
			Word:  st.Card.English,
			Image: BackImage,
			Color: "white",
			Back:  true,
		}
	}
	return types.Face{
		Title: "Spanish",
		Word:  st.Card.Spanish,
		Image: FrontImage,
		Color: "black",
	}
}
