package oracle

import "fmt"

var topicLens = map[Topic]string{
	TopicLove:    "relacionamentos",
	TopicWork:    "trabalho e projetos",
	TopicHealth:  "saúde e energia",
	TopicGeneral: "seu momento",
}

const (
	labelUpright  = "direita"
	labelReversed = "invertida"

	closingUpright  = "há abertura para avanço, mantenha clareza e pequenas ações consistentes."
	closingReversed = "revise expectativas, ajuste limites e evite decisões por impulso."

	closingAdvice = "Responda à pergunta com objetividade esta semana e observe sinais sutis."
)

// Compose renders the reading paragraph for a topic, a drawn card and an
// optional sign. It is a pure function of its arguments. Only the meaning
// for the drawn orientation appears in the text.
func Compose(topic Topic, card DrawnCard, sign Sign) string {
	lens, ok := topicLens[topic]
	if !ok {
		lens = topicLens[TopicGeneral]
	}

	label, closing := labelUpright, closingUpright
	if !card.Upright {
		label, closing = labelReversed, closingReversed
	}

	focus := "Foque no essencial: "
	if sign != SignNone {
		focus = fmt.Sprintf("Em %s, foque no essencial: ", sign)
	}

	return fmt.Sprintf("Para %s, %s (%s) indica %s. %s%s %s",
		lens, card.Name, label, card.Meaning(), focus, closing, closingAdvice)
}
