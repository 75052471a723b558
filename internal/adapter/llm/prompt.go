package llm

import (
	"fmt"

	"questgenius/internal/domain"
)

// systemPrompt is the fixed role description sent with every generation call.
const systemPrompt = `Você é um elaborador de questões de concursos públicos brasileiros, ` +
	`especialista nas bancas FGV, Cebraspe, Vunesp e Fumarc. Você escreve questões inéditas ` +
	`de múltipla escolha no estilo das provas reais, sempre com fundamentação jurídica ou técnica precisa.`

var difficultyLabels = map[domain.Difficulty]string{
	domain.DifficultyEasy:   "fácil",
	domain.DifficultyMedium: "média",
	domain.DifficultyHard:   "difícil",
}

// buildUserPrompt composes the instruction block for one generation call.
// The formatting rules are strict on purpose: the reply must carry a single
// JSON object the parser can extract even when the model wraps it in prose.
func buildUserPrompt(req *domain.QuestionRequest) string {
	return fmt.Sprintf(`Elabore UMA questão inédita de múltipla escolha para o concurso %q, matéria %q, dificuldade %s.

Regras de formato (obrigatórias):
1. Responda com um ÚNICO objeto JSON, sem nenhum texto antes ou depois.
2. O objeto deve ter exatamente estes campos:
   - "question": o enunciado completo da questão;
   - "options": um array com exatamente 5 alternativas (A a E), sem as letras;
   - "answer": o índice (0 a 4) da alternativa correta;
   - "explanation": explicação geral da resposta, citando a fundamentação legal ou técnica;
   - "alternativeExplanations": um array com 5 textos, um por alternativa, justificando por que cada uma está correta ou errada.
3. A questão deve ser autocontida e compatível com o estilo da banca do concurso indicado.
4. Não repita questões clássicas ou muito conhecidas; busque um enfoque original.`,
		req.ExamID, req.Subject, difficultyLabels[req.Difficulty])
}
