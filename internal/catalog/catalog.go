// Package catalog holds the static mapping from exam identifiers to the
// subject lists and edital metadata of the latest published notices. The data
// is defined at process start and never mutated.
package catalog

import (
	"sort"
	"strings"
)

// EditalInfo describes the governing notice of one exam.
type EditalInfo struct {
	Exam     string
	Year     int
	Subjects []string
	URL      string
}

// DefaultSubjects is returned for exams the catalog does not know about.
var DefaultSubjects = []string{
	"Português",
	"Matemática",
	"Conhecimentos Gerais",
	"Raciocínio Lógico",
	"Informática",
	"Legislação Específica",
}

var latestEditals = map[string]EditalInfo{
	"TJSP": {
		Exam:     "TJSP",
		Year:     2024,
		Subjects: []string{"Direito Constitucional", "Direito Administrativo", "Direito Civil", "Direito Processual Civil", "Direito Penal", "Direito Processual Penal", "Legislação Específica"},
		URL:      "https://conhecimento.fgv.br/concursos/tjsp23",
	},
	"TJMG": {
		Exam:     "TJMG",
		Year:     2023,
		Subjects: []string{"Direito Constitucional", "Direito Administrativo", "Direito Civil", "Direito Processual Civil", "Direito Penal", "Direito Processual Penal", "Legislação Específica"},
		URL:      "https://conhecimento.fgv.br/concursos/tjmg23",
	},
	"PCSP": {
		Exam:     "PCSP",
		Year:     2024,
		Subjects: []string{"Direito Penal", "Direito Processual Penal", "Criminologia", "Medicina Legal", "Direito Constitucional", "Direitos Humanos", "Legislação Específica"},
		URL:      "https://www.vunesp.com.br/PCSP2201",
	},
	"PCMG": {
		Exam:     "PCMG",
		Year:     2023,
		Subjects: []string{"Direito Penal", "Direito Processual Penal", "Criminologia", "Medicina Legal", "Direito Constitucional", "Legislação Específica", "Direitos Humanos"},
		URL:      "https://www.fumarc.com.br/concursos/detalhe/policia-civil-do-estado-de-minas-gerais/84/",
	},
	"PMSP": {
		Exam:     "PMSP",
		Year:     2024,
		Subjects: []string{"Direito Constitucional", "Direito Administrativo", "Direito Penal", "Legislação de Trânsito", "Raciocínio Lógico", "Conhecimentos Específicos"},
		URL:      "https://www.vunesp.com.br/PMIL2101",
	},
	"PMMG": {
		Exam:     "PMMG",
		Year:     2023,
		Subjects: []string{"Direito Constitucional", "Direito Administrativo", "Direito Penal", "Legislação de Trânsito", "Raciocínio Lógico", "Legislação Institucional"},
		URL:      "https://www.fumarc.com.br/concursos/detalhe/policia-militar-de-minas-gerais/83/",
	},
	"OAB": {
		Exam:     "OAB",
		Year:     2024,
		Subjects: []string{"Direito Constitucional", "Direito Administrativo", "Direito Civil", "Direito Processual Civil", "Direito Penal", "Direito Processual Penal", "Direito Empresarial", "Direito Tributário", "Direito do Trabalho", "Ética Profissional"},
		URL:      "https://oab.fgv.br/",
	},
	"INSS": {
		Exam:     "INSS",
		Year:     2023,
		Subjects: []string{"Direito Previdenciário", "Direito Constitucional", "Direito Administrativo", "Raciocínio Lógico", "Informática", "Legislação Previdenciária"},
		URL:      "https://www.cebraspe.org.br/concursos/inss_22",
	},
	"PF": {
		Exam:     "PF",
		Year:     2024,
		Subjects: []string{"Direito Constitucional", "Direito Administrativo", "Direito Penal", "Direito Processual Penal", "Raciocínio Lógico", "Legislação Específica", "Criminologia"},
		URL:      "https://www.cebraspe.org.br/concursos/pf_23",
	},
	"PRF": {
		Exam:     "PRF",
		Year:     2023,
		Subjects: []string{"Direito Constitucional", "Direito Administrativo", "Direito Penal", "Legislação de Trânsito", "Raciocínio Lógico", "Legislação Específica"},
		URL:      "https://www.cebraspe.org.br/concursos/prf_21",
	},
}

// lookup resolves an exam id, first by exact match and then by stripping a
// location suffix such as "PMSP - São Paulo".
func lookup(exam string) (EditalInfo, bool) {
	if info, ok := latestEditals[exam]; ok {
		return info, true
	}
	if base, _, found := strings.Cut(exam, " - "); found {
		if info, ok := latestEditals[base]; ok {
			return info, true
		}
	}
	return EditalInfo{}, false
}

// GetSubjects returns the subject list for an exam. Unknown exams fall back
// to DefaultSubjects, so the result is never empty. The returned slice is a
// copy; callers may not mutate catalog data.
func GetSubjects(exam string) []string {
	subjects := DefaultSubjects
	if info, ok := lookup(exam); ok {
		subjects = info.Subjects
	}
	out := make([]string, len(subjects))
	copy(out, subjects)
	return out
}

// GetEditalInfo returns the edital metadata for an exam, using the same
// matching rule as GetSubjects. The second return value reports whether the
// exam is known; no error is raised for unknown exams.
func GetEditalInfo(exam string) (EditalInfo, bool) {
	info, ok := lookup(exam)
	if !ok {
		return EditalInfo{}, false
	}
	subjects := make([]string, len(info.Subjects))
	copy(subjects, info.Subjects)
	info.Subjects = subjects
	return info, true
}

// Exams returns the known exam identifiers in sorted order.
func Exams() []string {
	out := make([]string, 0, len(latestEditals))
	for exam := range latestEditals {
		out = append(out, exam)
	}
	sort.Strings(out)
	return out
}
