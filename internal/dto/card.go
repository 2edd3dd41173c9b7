package dto

// FindCardsParams params for findCards.
type FindCardsParams struct {
	Query string `json:"query"`
}

// CardsParams params for actions taking a bare list of card IDs.
type CardsParams struct {
	Cards []int64 `json:"cards" binding:"required"`
}

// CardAnswer one answered card in answerCards. Ease uses the 1-4 scale:
// again, hard, good, easy.
type CardAnswer struct {
	CardID int64 `json:"cardId" binding:"required"`
	Ease   int   `json:"ease" binding:"required,min=1,max=4"`
}

// AnswerCardsParams params for answerCards.
type AnswerCardsParams struct {
	Answers []CardAnswer `json:"answers" binding:"required"`
}

// CardInfoResult one card in a cardsInfo reply.
type CardInfoResult struct {
	CardID    int64                    `json:"cardId"`
	NoteID    int64                    `json:"note"`
	DeckName  string                   `json:"deckName"`
	ModelName string                   `json:"modelName"`
	Question  string                   `json:"question"`
	Answer    string                   `json:"answer"`
	Fields    map[string]NoteInfoField `json:"fields"`
	Ord       int                      `json:"ord"`
	Type      int                      `json:"type"`
	Queue     int                      `json:"queue"`
	Due       int64                    `json:"due"`
	Interval  int                      `json:"interval"`
	Factor    int                      `json:"factor"`
	Reps      int                      `json:"reps"`
	Lapses    int                      `json:"lapses"`
	Mod       int64                    `json:"mod"`
}
