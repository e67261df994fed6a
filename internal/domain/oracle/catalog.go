package oracle

// majorArcana is read-only; MajorArcana hands out copies.
// Keys are stable identifiers persisted with each reading.
var majorArcana = []Card{
	{"00-louco", "O Louco", "/img/cards/00-louco.jpg", "novos começos, espontaneidade, fé", "imprudência, risco sem plano, ingenuidade"},
	{"01-mago", "O Mago", "/img/cards/01-mago.jpg", "vontade, iniciativa, comunicação", "manipulação, truques, dispersão"},
	{"02-sacerdotisa", "A Sacerdotisa", "/img/cards/02-sacerdotisa.jpg", "intuição, silêncio, mistério", "bloqueio intuitivo, segredos, ilusão"},
	{"03-imperatriz", "A Imperatriz", "/img/cards/03-imperatriz.jpg", "nutrição, beleza, abundância", "excesso, dependência, estagnação"},
	{"04-imperador", "O Imperador", "/img/cards/04-imperador.jpg", "estrutura, liderança, segurança", "rigidez, controle, autoritarismo"},
	{"05-papa", "O Papa", "/img/cards/05-papa.jpg", "tradição, sabedoria, aconselhamento", "dogma, rebeldia vazia, superficialidade"},
	{"06-enamorados", "Os Enamorados", "/img/cards/06-enamorados.jpg", "escolhas, conexão, valores", "dúvida, desalinhamento, tentação"},
	{"07-carruagem", "O Carro", "/img/cards/07-carro.jpg", "foco, vitória, direção", "impulsividade, descontrole, atraso"},
	{"08-forca", "A Força", "/img/cards/08-forca.jpg", "coragem, domínio interno, gentileza", "dúvida, impaciência, explosões"},
	{"09-eremita", "O Eremita", "/img/cards/09-eremita.jpg", "busca interior, análise, pausa", "isolamento, fuga, teimosia"},
	{"10-roda", "A Roda da Fortuna", "/img/cards/10-roda.jpg", "ciclos, sorte, virada", "resistência, repetição, instabilidade"},
	{"11-justica", "A Justiça", "/img/cards/11-justica.jpg", "equilíbrio, verdade, causa-efeito", "injustiça, viés, desequilíbrio"},
	{"12-enforcado", "O Enforcado", "/img/cards/12-enforcado.jpg", "nova perspectiva, entrega, pausa", "estagnação, sacrifício inútil, teimosia"},
	{"13-morte", "A Morte", "/img/cards/13-morte.jpg", "fim necessário, transformação, renascimento", "apego, medo da mudança, atraso"},
	{"14-temperanca", "A Temperança", "/img/cards/14-temperanca.jpg", "equilíbrio, síntese, paciência", "excesso, desequilíbrio, pressa"},
	{"15-diabo", "O Diabo", "/img/cards/15-diabo.jpg", "desejo, materialidade, contrato", "libertação, consciência, novos limites"},
	{"16-torre", "A Torre", "/img/cards/16-torre.jpg", "ruptura, revelação, despertar", "medo do colapso, dano contido, reconstrução"},
	{"17-estrela", "A Estrela", "/img/cards/17-estrela.jpg", "esperança, cura, propósito", "descrença, cansaço, foco difuso"},
	{"18-lua", "A Lua", "/img/cards/18-lua.jpg", "emoção, sonhos, sensibilidade", "confusão, ansiedade, ilusão"},
	{"19-sol", "O Sol", "/img/cards/19-sol.jpg", "clareza, sucesso, vitalidade", "ego, cansaço, atrasos"},
	{"20-julgamento", "O Julgamento", "/img/cards/20-julgamento.jpg", "chamado, perdão, segunda chance", "auto-crítica, culpa, adiamento"},
	{"21-mundo", "O Mundo", "/img/cards/21-mundo.jpg", "conclusão, expansão, viagem", "ciclo aberto, revisão, limites"},
}

// MajorArcana returns a copy of the 22-card catalog in numeric order.
func MajorArcana() []Card {
	out := make([]Card, len(majorArcana))
	copy(out, majorArcana)
	return out
}
