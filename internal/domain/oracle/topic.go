package oracle

import "strings"

// Topic is the coarse subject of a question.
type Topic string

// Known topics. TopicGeneral is the fallback.
const (
	TopicLove    Topic = "amor"
	TopicWork    Topic = "trabalho"
	TopicHealth  Topic = "saude"
	TopicGeneral Topic = "geral"
)

type topicKeywords struct {
	topic Topic
	stems []string
}

// topicGroups is checked in order and the first group with a matching stem
// wins, so a question about both love and health is classified as love.
// Accented stems are matched literally.
var topicGroups = []topicKeywords{
	{TopicLove, []string{"amor", "relaciona", "paix", "casament", "namor"}},
	{TopicWork, []string{"trabalho", "carreir", "emprego", "profiss", "negoci", "dinhei", "finan", "salário", "salario"}},
	{TopicHealth, []string{"saud", "saúd", "corpo", "ansiedad", "energia", "bem-estar", "doen"}},
}

// ClassifyTopic maps a free-text question to a topic by case-insensitive
// substring matching against fixed keyword stems.
func ClassifyTopic(question string) Topic {
	q := strings.ToLower(question)
	for _, g := range topicGroups {
		for _, stem := range g.stems {
			if strings.Contains(q, stem) {
				return g.topic
			}
		}
	}
	return TopicGeneral
}
