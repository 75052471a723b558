package domain

// FallbackQuestion returns the fixed question served whenever the generation
// pipeline cannot produce a valid result. It is a deterministic constant, not
// a retry: callers receive a fresh copy so the shared data is never mutated.
func FallbackQuestion() *Question {
	return &Question{
		Text: "De acordo com a Constituição Federal de 1988, assinale a alternativa correta a respeito dos direitos fundamentais:",
		Options: []string{
			"Os direitos fundamentais são absolutos e não podem sofrer limitações em nenhuma hipótese.",
			"Os tratados internacionais sobre direitos humanos aprovados pelo Congresso Nacional são equivalentes às emendas constitucionais, independentemente do quórum de aprovação.",
			"O direito à vida é inviolável, sendo vedada a pena de morte em qualquer hipótese no ordenamento jurídico brasileiro.",
			"Os tratados internacionais sobre direitos humanos aprovados com quórum qualificado têm status de norma constitucional.",
			"Os direitos fundamentais previstos na Constituição constituem um rol taxativo, não admitindo ampliação por outros meios.",
		},
		CorrectIndex: 3,
		Explanation: "A alternativa correta é a que afirma que os tratados internacionais sobre direitos humanos aprovados com quórum qualificado têm status de norma constitucional. " +
			"Isso está previsto no §3º do art. 5º da Constituição Federal, incluído pela Emenda Constitucional nº 45/2004, que estabelece que 'os tratados e convenções internacionais " +
			"sobre direitos humanos que forem aprovados, em cada Casa do Congresso Nacional, em dois turnos, por três quintos dos votos dos respectivos membros, serão equivalentes às emendas constitucionais'.",
		OptionExplanations: []string{
			"Incorreta. A doutrina e o STF reconhecem que nenhum direito fundamental é absoluto; todos admitem restrições diante do conflito com outros direitos ou valores constitucionais.",
			"Incorreta. Sem o quórum qualificado do §3º do art. 5º, os tratados de direitos humanos têm apenas status supralegal, conforme entendimento do STF.",
			"Incorreta. A própria Constituição admite a pena de morte em caso de guerra declarada, nos termos do art. 5º, XLVII, 'a'.",
			"Correta. É a literalidade do §3º do art. 5º da Constituição Federal, incluído pela Emenda Constitucional nº 45/2004.",
			"Incorreta. O §2º do art. 5º consagra a abertura material do catálogo: os direitos expressos não excluem outros decorrentes do regime, dos princípios ou de tratados internacionais.",
		},
	}
}
