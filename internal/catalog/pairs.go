package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/docquest/internal/blocks"
)

var pairNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/JaimeStill/docquest/qa_pairs"))

// PairID returns the deterministic id of the pair opened by questionBlockID.
func PairID(documentID, questionBlockID string) uuid.UUID {
	return uuid.NewSHA1(pairNamespace, []byte(documentID+"/"+questionBlockID))
}

// PairQuestions joins each question block with the run of answer blocks that
// immediately follows it. Questions without an answer produce no pair.
func PairQuestions(documentID string, bs []blocks.Block) []Pair {
	var (
		pairs    []Pair
		question *blocks.Block
		answers  []string
	)

	flush := func() {
		if question != nil && len(answers) > 0 {
			pairs = append(pairs, Pair{
				ID:              PairID(documentID, question.ID),
				DocumentID:      documentID,
				QuestionBlockID: question.ID,
				Question:        question.Content,
				Answer:          strings.Join(answers, "\n"),
			})
		}
		question = nil
		answers = nil
	}

	for i := range bs {
		switch bs[i].Type {
		case blocks.Question:
			flush()
			question = &bs[i]
		case blocks.Answer:
			if question != nil {
				answers = append(answers, bs[i].Content)
			}
		default:
			flush()
		}
	}
	flush()

	return pairs
}
